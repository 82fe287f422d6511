package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/hireflow/internal/cache"
	"github.com/yoockh/hireflow/internal/models"
	mongorepo "github.com/yoockh/hireflow/internal/repositories/mongo"
	pgrepo "github.com/yoockh/hireflow/internal/repositories/postgres"
	"github.com/yoockh/hireflow/internal/utils"
)

const (
	analyticsCacheKey = "analytics:summary"

	stageUnknown        = "Unknown"
	positionUnspecified = "Unspecified"
)

type AnalyticsService interface {
	Summary(ctx context.Context) (*models.AnalyticsSummary, error)
	// Invalidate drops the cached summary after the applicant data changed.
	Invalidate(ctx context.Context)
}

type analyticsService struct {
	applicants  pgrepo.ApplicantRepository
	forms       mongorepo.FormRepository
	submissions mongorepo.SubmissionRepository
	cache       cache.Cache // nil disables caching
	ttl         time.Duration
	log         *logrus.Logger
}

func NewAnalyticsService(
	applicants pgrepo.ApplicantRepository,
	forms mongorepo.FormRepository,
	submissions mongorepo.SubmissionRepository,
	c cache.Cache,
	ttl time.Duration,
	log *logrus.Logger,
) AnalyticsService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &analyticsService{
		applicants:  applicants,
		forms:       forms,
		submissions: submissions,
		cache:       c,
		ttl:         ttl,
		log:         log,
	}
}

func (s *analyticsService) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	const op = "AnalyticsService.Summary"

	if s.cache != nil {
		var cached models.AnalyticsSummary
		hit, err := s.cache.GetJSON(ctx, analyticsCacheKey, &cached)
		if err != nil {
			s.log.WithError(err).Warn("analytics cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	rows, err := s.applicants.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to query applicants", err)
	}
	totalForms, err := s.forms.Count(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count forms", err)
	}
	totalSubmissions, err := s.submissions.Count(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count submissions", err)
	}

	sum := Summarize(rows)
	sum.TotalForms = totalForms
	sum.TotalSubmissions = totalSubmissions
	sum.GeneratedAt = now()

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, analyticsCacheKey, sum, s.ttl); err != nil {
			s.log.WithError(err).Warn("analytics cache write failed")
		}
	}
	return sum, nil
}

func (s *analyticsService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, analyticsCacheKey); err != nil {
		s.log.WithError(err).Warn("analytics cache invalidation failed")
	}
}

// Summarize aggregates applicant rows. Store counts and GeneratedAt are left
// for the caller.
func Summarize(rows []models.Applicant) *models.AnalyticsSummary {
	sum := &models.AnalyticsSummary{
		TotalApplications: len(rows),
		ByStage:           map[string]int{},
		ByPosition:        map[string]int{},
		AverageScore:      decimal.Zero,
	}

	total := decimal.Zero
	for _, row := range rows {
		stage := strings.TrimSpace(row.String(models.ApplicantColStage))
		if stage == "" {
			stage = stageUnknown
		}
		sum.ByStage[stage]++

		position := strings.TrimSpace(row.String(models.ApplicantColApplyingFor))
		if position == "" {
			position = positionUnspecified
		}
		sum.ByPosition[position]++

		if strings.EqualFold(strings.TrimSpace(row.String(models.ApplicantColPhoneInterview)), "yes") {
			sum.PhoneInterviewed++
		}
		if row.Shortlisted() {
			sum.Shortlisted++
		}
		if row.Hired() {
			sum.Hired++
		}

		if score, ok := parseScore(row[models.ApplicantColJDCVScore]); ok {
			total = total.Add(score)
			sum.ScoredApplicants++
		}
	}

	if sum.ScoredApplicants > 0 {
		sum.AverageScore = total.Div(decimal.NewFromInt(int64(sum.ScoredApplicants))).Round(2)
	}
	return sum
}

func parseScore(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return t, true
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case []byte:
		return parseScore(string(t))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}
