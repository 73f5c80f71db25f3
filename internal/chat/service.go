package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/synapsehq/synapse-backend/internal/realtime"
	"github.com/synapsehq/synapse-backend/pkg/db/models"
	pkgerrors "github.com/synapsehq/synapse-backend/pkg/errors"
	"github.com/synapsehq/synapse-backend/pkg/logger"
)

const maxMessageLength = 4000

type membershipGate interface {
	IsAcceptedMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

// Publisher pushes room events out to connected clients.
type Publisher interface {
	Publish(ctx context.Context, event realtime.Event) error
}

// Service exposes the project chat operations.
type Service interface {
	ListMessages(ctx context.Context, input ListMessagesInput) (*MessageList, error)
	PostMessage(ctx context.Context, input PostMessageInput) (*Message, error)
}

type service struct {
	repo      Repository
	gate      membershipGate
	publisher Publisher
	logg      *logger.Logger
}

// NewService builds a chat service with the required dependencies.
func NewService(repo Repository, gate membershipGate, publisher Publisher, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("chat repository required")
	}
	if gate == nil {
		return nil, fmt.Errorf("membership gate required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	return &service{repo: repo, gate: gate, publisher: publisher, logg: logg}, nil
}

func (s *service) ListMessages(ctx context.Context, input ListMessagesInput) (*MessageList, error) {
	if err := s.requireMember(ctx, input.ProjectID, input.ViewerID); err != nil {
		return nil, err
	}

	list, err := s.repo.ListMessages(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	return list, nil
}

func (s *service) PostMessage(ctx context.Context, input PostMessageInput) (*Message, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body required")
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message body too long")
	}
	if err := s.requireMember(ctx, input.ProjectID, input.SenderID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateMessage(ctx, &models.ChatMessage{
		ID:        uuid.New(),
		ProjectID: input.ProjectID,
		SenderID:  input.SenderID,
		Body:      body,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist message")
	}

	message, err := s.repo.FindMessage(ctx, created.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load message")
	}

	// The message is durable at this point; a failed fanout only delays
	// delivery until clients refetch.
	payload, err := json.Marshal(message)
	if err == nil {
		err = s.publisher.Publish(ctx, realtime.NewEvent(realtime.EventNewMessage, input.ProjectID, input.SenderID, payload))
	}
	if err != nil && s.logg != nil {
		s.logg.Error(ctx, "publish chat message event", err)
	}

	return message, nil
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
		return pkgerrors.New(pkgerrors.CodeForbidden, "project chat is member-only")
	}
	return nil
}
