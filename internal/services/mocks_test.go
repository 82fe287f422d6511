package services_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/providers/workflow"
	"github.com/yoockh/hireflow/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockHRRepo struct {
	mock.Mock
}

func (m *MockHRRepo) Create(ctx context.Context, a *models.HRAccount) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockHRRepo) GetByEmail(ctx context.Context, email string) (*models.HRAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HRAccount), args.Error(1)
}

type MockFormRepo struct {
	mock.Mock
}

func (m *MockFormRepo) Create(ctx context.Context, f *models.FormTemplate) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFormRepo) List(ctx context.Context) ([]models.FormTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FormTemplate), args.Error(1)
}

func (m *MockFormRepo) GetByID(ctx context.Context, id string) (*models.FormTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FormTemplate), args.Error(1)
}

func (m *MockFormRepo) Update(ctx context.Context, id string, patch models.FormPatch, updatedAt time.Time) error {
	return m.Called(ctx, id, patch, updatedAt).Error(0)
}

func (m *MockFormRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFormRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Insert(ctx context.Context, s *models.Submission) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSubmissionRepo) List(ctx context.Context) ([]models.Submission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Submission), args.Error(1)
}

func (m *MockSubmissionRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockApplicantRepo struct {
	mock.Mock
}

func (m *MockApplicantRepo) ListAll(ctx context.Context) ([]models.Applicant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Applicant), args.Error(1)
}

type MockWorkflowCommandRepo struct {
	mock.Mock
}

func (m *MockWorkflowCommandRepo) Insert(ctx context.Context, cmd *models.WorkflowCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockWorkflowCommandRepo) Complete(ctx context.Context, id, status string, attempts, responseStatus int, errMsg string, completedAt time.Time) error {
	return m.Called(ctx, id, status, attempts, responseStatus, errMsg, completedAt).Error(0)
}

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, objectName, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, objectName, contentType, r)
	return args.String(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	return m.Called(ctx, key, val, ttl).Error(0)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type MockWorkflowClient struct {
	mock.Mock
}

func (m *MockWorkflowClient) Trigger(ctx context.Context, method, hook string, payload any) (*workflow.Result, error) {
	args := m.Called(ctx, method, hook, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Result), args.Error(1)
}

// memForms is an in-memory FormRepository for lifecycle tests.
type memForms struct {
	rows map[string]models.FormTemplate
}

func newMemForms() *memForms {
	return &memForms{rows: map[string]models.FormTemplate{}}
}

func (m *memForms) Create(_ context.Context, f *models.FormTemplate) error {
	f.ID = primitive.NewObjectID()
	m.rows[f.ID.Hex()] = *f
	return nil
}

func (m *memForms) List(context.Context) ([]models.FormTemplate, error) {
	out := make([]models.FormTemplate, 0, len(m.rows))
	for _, f := range m.rows {
		out = append(out, f)
	}
	return out, nil
}

func (m *memForms) GetByID(_ context.Context, id string) (*models.FormTemplate, error) {
	f, ok := m.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &f, nil
}

func (m *memForms) Update(_ context.Context, id string, patch models.FormPatch, updatedAt time.Time) error {
	f, ok := m.rows[id]
	if !ok {
		return utils.ErrNotFound
	}
	if patch.FormTitle != nil {
		f.FormTitle = *patch.FormTitle
	}
	if patch.Description != nil {
		f.Description = *patch.Description
	}
	if patch.Department != nil {
		f.Department = *patch.Department
	}
	if patch.Fields != nil {
		f.Fields = *patch.Fields
	}
	f.UpdatedAt = updatedAt
	m.rows[id] = f
	return nil
}

func (m *memForms) Delete(_ context.Context, id string) error {
	if _, ok := m.rows[id]; !ok {
		return utils.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memForms) Count(context.Context) (int64, error) {
	return int64(len(m.rows)), nil
}
