package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/enums"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
)

type membershipGate interface {
	IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

// Service exposes the project task board operations.
type Service interface {
	ListTasks(ctx context.Context, projectID, viewerID uuid.UUID) ([]Task, error)
	CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error)
	UpdateTaskStatus(ctx context.Context, input UpdateTaskStatusInput) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error
}

type service struct {
	repo Repository
	gate membershipGate
}

// NewService builds a tasks service with the required dependencies.
func NewService(repo Repository, gate membershipGate) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tasks repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("membership gate required")
	}
	return &service{repo: repo, gate: gate}, nil
}

func (s *service) ListTasks(ctx context.Context, projectID, viewerID uuid.UUID) ([]Task, error) {
	if err := s.requireMember(ctx, projectID, viewerID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListTasks(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tasks")
	}
	return list, nil
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "task title required")
	}
	if err := s.requireMember(ctx, input.ProjectID, input.CreatorID); err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		assigned, err := s.gate.IsAcceptedMember(ctx, input.ProjectID, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidOperation, "assignee must be an accepted project member")
		}
	}

	task, err := s.repo.CreateTask(ctx, &models.Task{
		ID:          uuid.New(),
		ProjectID:   input.ProjectID,
		CreatorID:   input.CreatorID,
		AssigneeID:  input.AssigneeID,
		Title:       title,
		Description: input.Description,
		Status:      enums.TaskStatusTodo,
		DueAt:       input.DueAt,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist task")
	}
	return task, nil
}

func (s *service) UpdateTaskStatus(ctx context.Context, input UpdateTaskStatusInput) (*models.Task, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown task status")
	}

	task, err := s.loadForWrite(ctx, input.TaskID, input.ActorUserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTaskStatus(ctx, task.ID, input.Status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update task status")
	}
	task.Status = input.Status
	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := s.loadForWrite(ctx, taskID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteTask(ctx, task.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete task")
	}
	return nil
}

// loadForWrite fetches the task and enforces that only its creator or its
// assignee may change it.
func (s *service) loadForWrite(ctx context.Context, taskID, userID uuid.UUID) (*models.Task, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	task, err := s.repo.FindTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load task")
	}

	if task.CreatorID != userID && (task.AssigneeID == nil || *task.AssigneeID != userID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the task creator or assignee can modify it")
	}
	return task, nil
}

func (s *service) requireMember(ctx context.Context, projectID, userID uuid.UUID) error {
	if projectID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "project id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	isMember, err := s.gate.IsAcceptedMember(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return pkgerrors.New(pkgerrors.CodeForbidden, "project tasks are member-only")
	}
	return nil
}
