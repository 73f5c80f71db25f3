package tasks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
)

// Repository persists project tasks.
type Repository interface {
	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	FindTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, projectID uuid.UUID) ([]Task, error)
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status enums.TaskStatus) error
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a tasks repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type taskRow struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	CreatorID    uuid.UUID
	AssigneeID   *uuid.UUID
	AssigneeName *string
	Title        string
	Description  *string
	Status       enums.TaskStatus
	DueAt        *time.Time
	CreatedAt    time.Time
}

func (r *repository) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (r *repository) FindTask(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ?", taskID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *repository) ListTasks(ctx context.Context, projectID uuid.UUID) ([]Task, error) {
	var rows []taskRow
	err := r.db.WithContext(ctx).
		Table("tasks t").
		Select(`t.id, t.project_id, t.creator_id, t.assignee_id, u.name AS assignee_name,
t.title, t.description, t.status, t.due_at, t.created_at`).
		Joins("LEFT JOIN users u ON u.id = t.assignee_id").
		Where("t.project_id = ?", projectID).
		Order("t.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, Task{
			ID:           row.ID,
			ProjectID:    row.ProjectID,
			CreatorID:    row.CreatorID,
			AssigneeID:   row.AssigneeID,
			AssigneeName: row.AssigneeName,
			Title:        row.Title,
			Description:  row.Description,
			Status:       row.Status,
			DueAt:        row.DueAt,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

func (r *repository) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status enums.TaskStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", taskID).
		Update("status", status).Error
}

func (r *repository) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", taskID).
		Delete(&models.Task{}).Error
}
