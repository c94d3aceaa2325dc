package message

import (
	"context"

	messageRepo "shopline/database/repository/message"
	"shopline/models"

	"github.com/google/uuid"
)

// ValidationError rejects malformed input (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError signals an empty or unknown conversation (404).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// MessageService manages conversation threads.
type MessageService interface {
	GetMessages(ctx context.Context, conversationID string) ([]models.Message, error)
	SendMessage(ctx context.Context, conversationID, userID, content, attachmentURL string) (*models.Message, error)
	MarkRead(ctx context.Context, messageID, userID string) error
}

// DefaultMessageService is the production implementation.
type DefaultMessageService struct {
	Repo messageRepo.MessageRepository
}

// GetMessages returns a conversation's messages in send order.
func (s *DefaultMessageService) GetMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	if conversationID == "" {
		return nil, &ValidationError{Message: "Invalid conversation ID"}
	}

	messages, err := s.Repo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, &NotFoundError{Message: "No messages found"}
	}
	return messages, nil
}

// SendMessage appends to a conversation. Content or an attachment is
// required; both may be present.
func (s *DefaultMessageService) SendMessage(ctx context.Context, conversationID, userID, content, attachmentURL string) (*models.Message, error) {
	if conversationID == "" {
		return nil, &ValidationError{Message: "Invalid conversation ID"}
	}
	if content == "" && attachmentURL == "" {
		return nil, &ValidationError{Message: "Content or attachmentUrl is required"}
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		UserID:         userID,
		Content:        content,
		AttachmentURL:  attachmentURL,
	}
	if err := s.Repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MarkRead stamps the read time on a message for the reader.
func (s *DefaultMessageService) MarkRead(ctx context.Context, messageID, userID string) error {
	if messageID == "" {
		return &ValidationError{Message: "Invalid message ID"}
	}
	return s.Repo.MarkRead(ctx, messageID, userID)
}
