package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yoockh/hireflow/internal/models"
	mongorepo "github.com/yoockh/hireflow/internal/repositories/mongo"
	"github.com/yoockh/hireflow/internal/utils"
)

const (
	msgFormRequired = "formTitle, description, department, and fields are required"
	msgFieldInvalid = "every field needs an id, type, and label"
	msgFormNotFound = "Form not found"
)

type FormService interface {
	Create(ctx context.Context, formTitle, description, department string, fields []models.FieldSpec) (*models.FormTemplate, error)
	List(ctx context.Context) ([]models.FormTemplate, error)
	Get(ctx context.Context, id string) (*models.FormTemplate, error)
	Update(ctx context.Context, id string, patch models.FormPatch) error
	Delete(ctx context.Context, id string) error
}

type formService struct {
	forms    mongorepo.FormRepository
	validate *validator.Validate
}

func NewFormService(forms mongorepo.FormRepository, validate *validator.Validate) FormService {
	if validate == nil {
		validate = validator.New()
	}
	return &formService{forms: forms, validate: validate}
}

// now is truncated to the store's millisecond precision so what we return
// matches what a later read gives back.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (s *formService) validateFields(fields []models.FieldSpec) error {
	for i := range fields {
		if err := s.validate.Struct(&fields[i]); err != nil {
			return err
		}
	}
	return nil
}

// Create requires a fields list to be present; an empty list is accepted.
func (s *formService) Create(ctx context.Context, formTitle, description, department string, fields []models.FieldSpec) (*models.FormTemplate, error) {
	const op = "FormService.Create"

	if strings.TrimSpace(formTitle) == "" || strings.TrimSpace(description) == "" ||
		strings.TrimSpace(department) == "" || fields == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgFormRequired, nil)
	}
	if err := s.validateFields(fields); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, msgFieldInvalid, err)
	}

	ts := now()
	form := &models.FormTemplate{
		FormTitle:   formTitle,
		Description: description,
		Department:  department,
		Fields:      fields,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.forms.Create(ctx, form); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create form", err)
	}
	return form, nil
}

func (s *formService) List(ctx context.Context) ([]models.FormTemplate, error) {
	const op = "FormService.List"

	out, err := s.forms.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list forms", err)
	}
	return out, nil
}

func (s *formService) Get(ctx context.Context, id string) (*models.FormTemplate, error) {
	const op = "FormService.Get"

	f, err := s.forms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, msgFormNotFound, err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get form", err)
	}
	return f, nil
}

// Update replaces the parts present in patch and always moves updatedAt
// forward, even when two writes land in the same millisecond.
func (s *formService) Update(ctx context.Context, id string, patch models.FormPatch) error {
	const op = "FormService.Update"

	if patch.Fields != nil {
		if *patch.Fields == nil {
			return utils.E(utils.CodeInvalidArgument, op, msgFormRequired, nil)
		}
		if err := s.validateFields(*patch.Fields); err != nil {
			return utils.E(utils.CodeInvalidArgument, op, msgFieldInvalid, err)
		}
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	ts := now()
	if !ts.After(current.UpdatedAt) {
		ts = current.UpdatedAt.Add(time.Millisecond)
	}

	if err := s.forms.Update(ctx, id, patch, ts); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, msgFormNotFound, err)
		}
		return utils.E(utils.CodeInternal, op, "failed to update form", err)
	}
	return nil
}

func (s *formService) Delete(ctx context.Context, id string) error {
	const op = "FormService.Delete"

	if err := s.forms.Delete(ctx, id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, msgFormNotFound, err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete form", err)
	}
	return nil
}
