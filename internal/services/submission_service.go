package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/yoockh/hireflow/internal/models"
	mongorepo "github.com/yoockh/hireflow/internal/repositories/mongo"
	"github.com/yoockh/hireflow/internal/storage"
	"github.com/yoockh/hireflow/internal/utils"
)

// SubmissionKeyFormID links a submission to the template it was filled from.
// It is optional and only inspected in strict mode.
const SubmissionKeyFormID = "formId"

// UploadFile is a résumé held in memory for the duration of one request.
type UploadFile struct {
	Filename string
	Content  []byte
}

type SubmissionOptions struct {
	// Folder is the object prefix résumés are stored under.
	Folder string
	// Strict checks submissions that name a formId against that template.
	Strict bool
}

type SubmissionService interface {
	Submit(ctx context.Context, fields map[string]any, file *UploadFile) (*models.Submission, error)
	List(ctx context.Context) ([]models.Submission, error)
}

type submissionService struct {
	submissions mongorepo.SubmissionRepository
	forms       mongorepo.FormRepository
	uploader    storage.Uploader
	opts        SubmissionOptions
}

// NewSubmissionService wires the submission flow. forms is only used in strict
// mode and may be nil otherwise; uploader may be nil when uploads are off.
func NewSubmissionService(submissions mongorepo.SubmissionRepository, forms mongorepo.FormRepository, uploader storage.Uploader, opts SubmissionOptions) SubmissionService {
	if opts.Folder == "" {
		opts.Folder = "resumes"
	}
	return &submissionService{submissions: submissions, forms: forms, uploader: uploader, opts: opts}
}

func (s *submissionService) Submit(ctx context.Context, fields map[string]any, file *UploadFile) (*models.Submission, error) {
	const op = "SubmissionService.Submit"

	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if models.IsReservedSubmissionKey(k) {
			continue
		}
		if !isScalar(v) {
			return nil, utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("field %q must be a single text, number or boolean value", k), nil)
		}
		clean[k] = v
	}

	if s.opts.Strict {
		if err := s.checkAgainstTemplate(ctx, clean, file != nil); err != nil {
			return nil, err
		}
	}

	sub := &models.Submission{Fields: clean}

	// upload first: a failed upload must leave nothing behind
	if file != nil {
		if s.uploader == nil {
			return nil, utils.E(utils.CodeUploadFailed, op, "failed to upload cv", errors.New("uploader is not configured"))
		}
		objectName := storage.ObjectName(s.opts.Folder, file.Filename, file.Content)
		contentType := storage.DetectContentType(file.Content)

		url, err := s.uploader.Upload(ctx, objectName, contentType, bytes.NewReader(file.Content))
		if err != nil {
			return nil, utils.E(utils.CodeUploadFailed, op, "failed to upload cv", err)
		}
		sub.CV = url
	}

	ts := now()
	sub.CreatedAt = ts
	sub.UpdatedAt = ts

	if err := s.submissions.Insert(ctx, sub); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save submission", err)
	}
	return sub, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, json.Number,
		float64, float32, int, int32, int64:
		return true
	}
	return false
}

func (s *submissionService) List(ctx context.Context) ([]models.Submission, error) {
	const op = "SubmissionService.List"

	out, err := s.submissions.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list submissions", err)
	}
	return out, nil
}

// checkAgainstTemplate accepts keys matching a field id or label of the
// referenced template and requires every required non-file field to be filled.
// Submissions without a formId pass unchecked.
func (s *submissionService) checkAgainstTemplate(ctx context.Context, fields map[string]any, hasFile bool) error {
	const op = "SubmissionService.Submit"

	formID := strings.TrimSpace(fmt.Sprint(fields[SubmissionKeyFormID]))
	if _, ok := fields[SubmissionKeyFormID]; !ok || formID == "" || s.forms == nil {
		return nil
	}

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeInvalidArgument, op, "unknown formId", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to load form", err)
	}

	known := map[string]models.FieldSpec{}
	for _, f := range form.Fields {
		known[f.ID] = f
		known[f.Label] = f
	}
	for k := range fields {
		if k == SubmissionKeyFormID {
			continue
		}
		if _, ok := known[k]; !ok {
			return utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("unexpected field %q", k), nil)
		}
	}

	for _, f := range form.Fields {
		if !f.Required {
			continue
		}
		if f.Type == "file" {
			if !hasFile {
				return utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("%s is required", f.Label), nil)
			}
			continue
		}
		if isBlank(fields[f.ID]) && isBlank(fields[f.Label]) {
			return utils.E(utils.CodeInvalidArgument, op, fmt.Sprintf("%s is required", f.Label), nil)
		}
	}
	return nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
