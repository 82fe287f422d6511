package postgres

import (
	"context"

	"github.com/yoockh/hireflow/internal/models"
	"gorm.io/gorm"
)

// ApplicationsTable is owned by the spreadsheet sync workflow; this service
// only reads it.
const ApplicationsTable = "Applications"

type ApplicantRepository interface {
	ListAll(ctx context.Context) ([]models.Applicant, error)
}

type applicantRepo struct {
	db *gorm.DB
}

func NewApplicantRepo(db *gorm.DB) ApplicantRepository {
	return &applicantRepo{db: db}
}

func (r *applicantRepo) ListAll(ctx context.Context) ([]models.Applicant, error) {
	var rows []map[string]any
	err := r.db.WithContext(ctx).
		Table(ApplicationsTable).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]models.Applicant, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Applicant(row))
	}
	return out, nil
}
