package services

import (
	"context"

	"github.com/yoockh/hireflow/internal/models"
	pgrepo "github.com/yoockh/hireflow/internal/repositories/postgres"
	"github.com/yoockh/hireflow/internal/utils"
)

type ApplicantService interface {
	List(ctx context.Context) ([]models.Applicant, error)
}

type applicantService struct {
	applicants pgrepo.ApplicantRepository
}

func NewApplicantService(applicants pgrepo.ApplicantRepository) ApplicantService {
	return &applicantService{applicants: applicants}
}

// List returns the Applications rows as stored, column names untouched.
func (s *applicantService) List(ctx context.Context) ([]models.Applicant, error) {
	const op = "ApplicantService.List"

	rows, err := s.applicants.ListAll(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to query applicants", err)
	}
	return rows, nil
}
