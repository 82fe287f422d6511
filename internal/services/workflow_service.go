package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/hireflow/internal/metrics"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/providers/workflow"
	pgrepo "github.com/yoockh/hireflow/internal/repositories/postgres"
	"github.com/yoockh/hireflow/internal/utils"
	"gorm.io/datatypes"
)

// OnsiteInterview identifies the candidate whose onsite interview slot is
// being recorded.
type OnsiteInterview struct {
	UserID string `json:"userId" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}

type WorkflowService interface {
	SendCredentials(ctx context.Context) (sent int, err error)
	SyncApplicants(ctx context.Context) error
	EmailHired(ctx context.Context) error
	UpdateOnsiteInterview(ctx context.Context, in OnsiteInterview) error
	NotifySubmission(ctx context.Context, sub *models.Submission) error
}

type WorkflowDeps struct {
	Client     workflow.Client
	Commands   pgrepo.WorkflowCommandRepository // optional audit trail
	Applicants pgrepo.ApplicantRepository
	Analytics  AnalyticsService // optional, invalidated after a sync
	Metrics    *metrics.Metrics // optional
	Validate   *validator.Validate
	Log        *logrus.Logger
}

type workflowService struct {
	WorkflowDeps
}

func NewWorkflowService(d WorkflowDeps) WorkflowService {
	if d.Client == nil {
		d.Client = workflow.Disabled{}
	}
	if d.Validate == nil {
		d.Validate = validator.New()
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	return &workflowService{WorkflowDeps: d}
}

func (s *workflowService) SendCredentials(ctx context.Context) (int, error) {
	const op = "WorkflowService.SendCredentials"

	rows, err := s.Applicants.ListAll(ctx)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to query applicants", err)
	}

	// rows go out with their sheet column names, the receiving flow reads them as is
	candidates := make([]models.Applicant, 0)
	for _, row := range rows {
		if row.Shortlisted() {
			candidates = append(candidates, row)
		}
	}

	payload := map[string]any{
		"candidates": candidates,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"action":     string(models.WorkflowSendCredentials),
	}
	if err := s.dispatch(ctx, op, models.WorkflowSendCredentials, http.MethodPost, workflow.HookSendCredentials, payload); err != nil {
		return 0, err
	}
	return len(candidates), nil
}

func (s *workflowService) SyncApplicants(ctx context.Context) error {
	const op = "WorkflowService.SyncApplicants"

	if err := s.dispatch(ctx, op, models.WorkflowSyncApplicants, http.MethodGet, workflow.HookSyncApplicants, nil); err != nil {
		return err
	}
	if s.Analytics != nil {
		s.Analytics.Invalidate(ctx)
	}
	return nil
}

func (s *workflowService) EmailHired(ctx context.Context) error {
	const op = "WorkflowService.EmailHired"

	payload := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"action":    string(models.WorkflowEmailHired),
	}
	return s.dispatch(ctx, op, models.WorkflowEmailHired, http.MethodPost, workflow.HookEmailHired, payload)
}

func (s *workflowService) UpdateOnsiteInterview(ctx context.Context, in OnsiteInterview) error {
	const op = "WorkflowService.UpdateOnsiteInterview"

	in.UserID = strings.TrimSpace(in.UserID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := s.Validate.Struct(in); err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "userId, name, and a valid email are required", err)
	}
	return s.dispatch(ctx, op, models.WorkflowUpdateOnsiteInterview, http.MethodPost, workflow.HookUpdateOnsiteInterview, in)
}

func (s *workflowService) NotifySubmission(ctx context.Context, sub *models.Submission) error {
	const op = "WorkflowService.NotifySubmission"

	if sub == nil {
		return utils.E(utils.CodeInvalidArgument, op, "submission is required", nil)
	}
	if err := s.dispatch(ctx, op, models.WorkflowSubmissionReceived, http.MethodPost, workflow.HookSubmissionReceived, sub); err != nil {
		return err
	}

	// the flow appends the submission to the sheet; pull it into Applications
	if err := s.dispatch(ctx, op, models.WorkflowSyncSubmissions, http.MethodGet, workflow.HookSyncSubmissions, nil); err != nil {
		return err
	}
	if s.Analytics != nil {
		s.Analytics.Invalidate(ctx)
	}
	return nil
}

// dispatch records the command, triggers the hook and completes the record
// with the outcome. Audit failures are logged and never block delivery.
func (s *workflowService) dispatch(ctx context.Context, op string, action models.WorkflowAction, method, hook string, payload any) error {
	log := s.Log.WithFields(logrus.Fields{"op": op, "action": action, "hook": hook})

	cmd := &models.WorkflowCommand{
		ID:        uuid.NewString(),
		Action:    action,
		Status:    models.WorkflowStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			cmd.Payload = datatypes.JSON(b)
		}
	}

	audited := false
	if s.Commands != nil {
		if err := s.Commands.Insert(ctx, cmd); err != nil {
			log.WithError(err).Warn("workflow audit insert failed")
		} else {
			audited = true
		}
	}

	res, err := s.Client.Trigger(ctx, method, hook, payload)

	status := models.WorkflowStatusSucceeded
	errMsg := ""
	if err != nil {
		status = models.WorkflowStatusFailed
		errMsg = err.Error()
	}
	attempts, respStatus := 0, 0
	if res != nil {
		attempts, respStatus = res.Attempts, res.StatusCode
	}

	if audited {
		// the request context may already be cancelled; the outcome is still worth recording
		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if cerr := s.Commands.Complete(actx, cmd.ID, status, attempts, respStatus, errMsg, time.Now().UTC()); cerr != nil {
			log.WithError(cerr).Warn("workflow audit completion failed")
		}
		cancel()
	}
	if s.Metrics != nil {
		s.Metrics.WorkflowCommandsTotal.WithLabelValues(string(action), status).Inc()
	}

	if err == nil {
		log.WithFields(logrus.Fields{"attempts": attempts, "status_code": respStatus}).Info("workflow command delivered")
		return nil
	}

	log.WithError(err).WithField("attempts", attempts).Warn("workflow command failed")

	if errors.Is(err, workflow.ErrNotConfigured) {
		return utils.E(utils.CodeUnavailable, op, "workflow automation is not configured", err)
	}
	var se *workflow.StatusError
	if errors.As(err, &se) {
		return utils.E(utils.CodeBadGateway, op, "workflow automation rejected the request ("+strconv.Itoa(se.StatusCode)+")", err)
	}
	return utils.E(utils.CodeBadGateway, op, "workflow automation is unreachable", err)
}
