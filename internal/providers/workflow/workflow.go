package workflow

import (
	"context"
	"errors"
	"fmt"
)

// Webhook paths exposed by the workflow-automation instance.
const (
	HookSendCredentials       = "send-cred"
	HookSyncApplicants        = "sheetstosupabse2"
	HookSyncSubmissions       = "sheetstosupabse"
	HookEmailHired            = "send-mail-to-hired-candidates"
	HookUpdateOnsiteInterview = "update-onsite-interview"
	HookSubmissionReceived    = "user-form"
)

// ErrNotConfigured is returned by Disabled for every call.
var ErrNotConfigured = errors.New("workflow endpoint is not configured")

type Result struct {
	StatusCode int
	Attempts   int
	Body       []byte
}

// Client triggers a webhook. Non-2xx answers come back as *StatusError along
// with the Result of the last attempt.
type Client interface {
	Trigger(ctx context.Context, method, hook string, payload any) (*Result, error)
}

type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("workflow webhook answered %d: %s", e.StatusCode, e.Body)
}

// Disabled stands in when no base URL is configured.
type Disabled struct{}

func (Disabled) Trigger(context.Context, string, string, any) (*Result, error) {
	return nil, ErrNotConfigured
}
