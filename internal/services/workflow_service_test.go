package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/hireflow/internal/metrics"
	"github.com/yoockh/hireflow/internal/models"
	"github.com/yoockh/hireflow/internal/providers/workflow"
	"github.com/yoockh/hireflow/internal/services"
	"github.com/yoockh/hireflow/internal/utils"
)

func TestSendCredentialsSelectsShortlisted(t *testing.T) {
	apps := new(MockApplicantRepo)
	client := new(MockWorkflowClient)
	cmds := new(MockWorkflowCommandRepo)
	m := metrics.New()

	apps.On("ListAll", mock.Anything).Return(applicantRows(), nil)
	cmds.On("Insert", mock.Anything, mock.MatchedBy(func(c *models.WorkflowCommand) bool {
		return c.Action == models.WorkflowSendCredentials && c.Status == models.WorkflowStatusPending && len(c.Payload) > 0
	})).Return(nil)
	cmds.On("Complete", mock.Anything, mock.Anything, models.WorkflowStatusSucceeded, 1, 200, "", mock.Anything).Return(nil)

	var payload map[string]any
	client.On("Trigger", mock.Anything, http.MethodPost, workflow.HookSendCredentials, mock.Anything).
		Return(&workflow.Result{StatusCode: 200, Attempts: 1}, nil).
		Run(func(args mock.Arguments) { payload = args.Get(3).(map[string]any) })

	svc := services.NewWorkflowService(services.WorkflowDeps{
		Client: client, Commands: cmds, Applicants: apps, Metrics: m,
	})

	sent, err := svc.SendCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	require.NotNil(t, payload)
	assert.Equal(t, "send_credentials_to_shortlisted", payload["action"])
	candidates := payload["candidates"].([]models.Applicant)
	require.Len(t, candidates, 2)
	// rows are forwarded whole with their column names
	assert.Equal(t, applicantRows()[0], candidates[0])
	assert.Equal(t, applicantRows()[1], candidates[1])
	assert.Equal(t, "Backend", candidates[0]["Applying For"])

	cmds.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WorkflowCommandsTotal.WithLabelValues(string(models.WorkflowSendCredentials), models.WorkflowStatusSucceeded)))
}

func TestWorkflowNotConfigured(t *testing.T) {
	svc := services.NewWorkflowService(services.WorkflowDeps{Client: workflow.Disabled{}})

	err := svc.EmailHired(context.Background())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
	assert.Equal(t, http.StatusServiceUnavailable, utils.HTTPStatus(err))
}

func TestWorkflowRejectedIsBadGateway(t *testing.T) {
	client := new(MockWorkflowClient)
	cmds := new(MockWorkflowCommandRepo)
	cmds.On("Insert", mock.Anything, mock.Anything).Return(nil)
	cmds.On("Complete", mock.Anything, mock.Anything, models.WorkflowStatusFailed, 3, 500, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	client.On("Trigger", mock.Anything, http.MethodGet, workflow.HookSyncApplicants, nil).
		Return(&workflow.Result{StatusCode: 500, Attempts: 3}, &workflow.StatusError{StatusCode: 500, Body: "oops"})

	analytics := new(MockAnalytics)
	svc := services.NewWorkflowService(services.WorkflowDeps{Client: client, Commands: cmds, Analytics: analytics})

	err := svc.SyncApplicants(context.Background())
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeBadGateway))
	analytics.AssertNotCalled(t, "Invalidate", mock.Anything)
	cmds.AssertExpectations(t)
}

func TestSyncApplicantsInvalidatesAnalytics(t *testing.T) {
	client := new(MockWorkflowClient)
	client.On("Trigger", mock.Anything, http.MethodGet, workflow.HookSyncApplicants, nil).
		Return(&workflow.Result{StatusCode: 200, Attempts: 1}, nil)
	analytics := new(MockAnalytics)
	analytics.On("Invalidate", mock.Anything).Return()

	svc := services.NewWorkflowService(services.WorkflowDeps{Client: client, Analytics: analytics})

	require.NoError(t, svc.SyncApplicants(context.Background()))
	analytics.AssertCalled(t, "Invalidate", mock.Anything)
}

func TestWorkflowAuditFailureDoesNotBlock(t *testing.T) {
	client := new(MockWorkflowClient)
	cmds := new(MockWorkflowCommandRepo)
	cmds.On("Insert", mock.Anything, mock.Anything).Return(errors.New("db down"))
	client.On("Trigger", mock.Anything, http.MethodPost, workflow.HookEmailHired, mock.Anything).
		Return(&workflow.Result{StatusCode: 200, Attempts: 1}, nil)

	svc := services.NewWorkflowService(services.WorkflowDeps{Client: client, Commands: cmds})

	require.NoError(t, svc.EmailHired(context.Background()))
	cmds.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOnsiteInterviewValidation(t *testing.T) {
	client := new(MockWorkflowClient)
	svc := services.NewWorkflowService(services.WorkflowDeps{Client: client})

	for _, in := range []services.OnsiteInterview{
		{Name: "A", Email: "a@b.co"},
		{UserID: "1", Email: "a@b.co"},
		{UserID: "1", Name: "A"},
		{UserID: "1", Name: "A", Email: "not-an-email"},
	} {
		err := svc.UpdateOnsiteInterview(context.Background(), in)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), "%+v", in)
	}
	client.AssertNotCalled(t, "Trigger", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	client.On("Trigger", mock.Anything, http.MethodPost, workflow.HookUpdateOnsiteInterview,
		services.OnsiteInterview{UserID: "1", Name: "A", Email: "a@b.co"}).
		Return(&workflow.Result{StatusCode: 200, Attempts: 1}, nil)
	assert.NoError(t, svc.UpdateOnsiteInterview(context.Background(), services.OnsiteInterview{UserID: " 1", Name: "A ", Email: "a@b.co"}))
}

func TestSyncApplicantsHookName(t *testing.T) {
	assert.Equal(t, "sheetstosupabse2", workflow.HookSyncApplicants)
	assert.Equal(t, "sheetstosupabse", workflow.HookSyncSubmissions)
}

func TestNotifySubmission(t *testing.T) {
	client := new(MockWorkflowClient)
	sub := &models.Submission{Fields: map[string]any{"name": "Budi"}}
	client.On("Trigger", mock.Anything, http.MethodPost, workflow.HookSubmissionReceived, sub).
		Return(nil, errors.New("dial tcp: connection refused"))

	svc := services.NewWorkflowService(services.WorkflowDeps{Client: client})

	err := svc.NotifySubmission(context.Background(), sub)
	assert.True(t, utils.IsCode(err, utils.CodeBadGateway))
	client.AssertNotCalled(t, "Trigger", mock.Anything, http.MethodGet, workflow.HookSyncSubmissions, mock.Anything)
	assert.True(t, utils.IsCode(svc.NotifySubmission(context.Background(), nil), utils.CodeInvalidArgument))
}

func TestNotifySubmissionSyncsAfterDelivery(t *testing.T) {
	client := new(MockWorkflowClient)
	analytics := new(MockAnalytics)
	sub := &models.Submission{Fields: map[string]any{"name": "Budi"}}

	var hooks []string
	record := func(args mock.Arguments) { hooks = append(hooks, args.String(2)) }
	client.On("Trigger", mock.Anything, http.MethodPost, workflow.HookSubmissionReceived, sub).
		Return(&workflow.Result{StatusCode: 200, Attempts: 1}, nil).Run(record)
	client.On("Trigger", mock.Anything, http.MethodGet, workflow.HookSyncSubmissions, nil).
		Return(&workflow.Result{StatusCode: 200, Attempts: 1}, nil).Run(record)
	analytics.On("Invalidate", mock.Anything).Return()

	svc := services.NewWorkflowService(services.WorkflowDeps{Client: client, Analytics: analytics})

	require.NoError(t, svc.NotifySubmission(context.Background(), sub))
	assert.Equal(t, []string{workflow.HookSubmissionReceived, workflow.HookSyncSubmissions}, hooks)
	analytics.AssertCalled(t, "Invalidate", mock.Anything)
}

func TestNotifySubmissionSyncFailure(t *testing.T) {
	client := new(MockWorkflowClient)
	analytics := new(MockAnalytics)
	sub := &models.Submission{Fields: map[string]any{"name": "Budi"}}
	client.On("Trigger", mock.Anything, http.MethodPost, workflow.HookSubmissionReceived, sub).
		Return(&workflow.Result{StatusCode: 200, Attempts: 1}, nil)
	client.On("Trigger", mock.Anything, http.MethodGet, workflow.HookSyncSubmissions, nil).
		Return(&workflow.Result{StatusCode: 502, Attempts: 3}, &workflow.StatusError{StatusCode: 502})

	svc := services.NewWorkflowService(services.WorkflowDeps{Client: client, Analytics: analytics})

	err := svc.NotifySubmission(context.Background(), sub)
	assert.True(t, utils.IsCode(err, utils.CodeBadGateway))
	analytics.AssertNotCalled(t, "Invalidate", mock.Anything)
}

type MockAnalytics struct {
	mock.Mock
}

func (m *MockAnalytics) Summary(ctx context.Context) (*models.AnalyticsSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalyticsSummary), args.Error(1)
}

func (m *MockAnalytics) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
