package postgres

import (
	"context"
	"time"

	"github.com/yoockh/hireflow/internal/models"
	"gorm.io/gorm"
)

type WorkflowCommandRepository interface {
	Insert(ctx context.Context, cmd *models.WorkflowCommand) error
	Complete(ctx context.Context, id, status string, attempts, responseStatus int, errMsg string, completedAt time.Time) error
}

type workflowCommandRepo struct {
	db *gorm.DB
}

func NewWorkflowCommandRepo(db *gorm.DB) WorkflowCommandRepository {
	return &workflowCommandRepo{db: db}
}

func (r *workflowCommandRepo) Insert(ctx context.Context, cmd *models.WorkflowCommand) error {
	return r.db.WithContext(ctx).Create(cmd).Error
}

func (r *workflowCommandRepo) Complete(ctx context.Context, id, status string, attempts, responseStatus int, errMsg string, completedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.WorkflowCommand{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          status,
			"attempts":        attempts,
			"response_status": responseStatus,
			"error":           errMsg,
			"completed_at":    completedAt,
		}).Error
}
