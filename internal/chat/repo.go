package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/synapsehq/synapse-backend/pkg/db/models"
	"github.com/synapsehq/synapse-backend/pkg/pagination"
)

// Repository persists and reads chat messages.
type Repository interface {
	CreateMessage(ctx context.Context, message *models.ChatMessage) (*models.ChatMessage, error)
	FindMessage(ctx context.Context, messageID uuid.UUID) (*Message, error)
	ListMessages(ctx context.Context, input ListMessagesInput) (*MessageList, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a chat repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type messageRow struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	SenderID   uuid.UUID
	SenderName string
	Body       string
	CreatedAt  time.Time
}

const messageColumns = `cm.id, cm.project_id, cm.sender_id, u.name AS sender_name, cm.body, cm.created_at`

func (r *repository) CreateMessage(ctx context.Context, message *models.ChatMessage) (*models.ChatMessage, error) {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *repository) FindMessage(ctx context.Context, messageID uuid.UUID) (*Message, error) {
	var row messageRow
	err := r.db.WithContext(ctx).
		Table("chat_messages cm").
		Select(messageColumns).
		Joins("JOIN users u ON u.id = cm.sender_id").
		Where("cm.id = ?", messageID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	message := row.toMessage()
	return &message, nil
}

func (r *repository) ListMessages(ctx context.Context, input ListMessagesInput) (*MessageList, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Table("chat_messages cm").
		Select(messageColumns).
		Joins("JOIN users u ON u.id = cm.sender_id").
		Where("cm.project_id = ?", input.ProjectID)

	if cursor != nil {
		qb = qb.Where("(cm.created_at < ?) OR (cm.created_at = ? AND cm.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []messageRow
	err = qb.Order("cm.created_at DESC").Order("cm.id DESC").
		Limit(limitWithBuffer).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	resultRows := rows
	nextCursor := ""
	if len(rows) > pageSize {
		resultRows = rows[:pageSize]
		last := resultRows[len(resultRows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	messages := make([]Message, 0, len(resultRows))
	for _, row := range resultRows {
		messages = append(messages, row.toMessage())
	}

	return &MessageList{
		Messages:   messages,
		NextCursor: nextCursor,
	}, nil
}

func (row messageRow) toMessage() Message {
	return Message{
		ID:         row.ID,
		ProjectID:  row.ProjectID,
		SenderID:   row.SenderID,
		SenderName: row.SenderName,
		Body:       row.Body,
		CreatedAt:  row.CreatedAt,
	}
}
