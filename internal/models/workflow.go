package models

import (
	"time"

	"gorm.io/datatypes"
)

type WorkflowAction string

const (
	WorkflowSendCredentials       WorkflowAction = "send_credentials_to_shortlisted"
	WorkflowSyncApplicants        WorkflowAction = "sync_applicants"
	WorkflowEmailHired            WorkflowAction = "email_hired_candidates"
	WorkflowUpdateOnsiteInterview WorkflowAction = "update_onsite_interview"
	WorkflowSubmissionReceived    WorkflowAction = "submission_received"
	WorkflowSyncSubmissions       WorkflowAction = "sync_submissions"
)

const (
	WorkflowStatusPending   = "pending"
	WorkflowStatusSucceeded = "succeeded"
	WorkflowStatusFailed    = "failed"
)

// WorkflowCommand is the audit row of one outbound webhook call.
type WorkflowCommand struct {
	ID             string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Action         WorkflowAction `gorm:"column:action;type:text;index" json:"action"`
	Status         string         `gorm:"column:status;type:text;index" json:"status"` // pending|succeeded|failed
	Attempts       int            `gorm:"column:attempts;type:integer" json:"attempts"`
	Payload        datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	ResponseStatus int            `gorm:"column:response_status;type:integer" json:"response_status"`
	Error          string         `gorm:"column:error;type:text" json:"error,omitempty"`
	CreatedAt      time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
	CompletedAt    *time.Time     `gorm:"column:completed_at;type:timestamptz" json:"completed_at,omitempty"`
}

func (WorkflowCommand) TableName() string { return "workflow_commands" }
