package services

import (
	"context"

	"cryptodash/src/models"
	"cryptodash/src/repositories"
)

type MessageServiceI interface {
	List(ctx context.Context, userID int64, limit int) ([]repositories.UserMessageView, error)
	MarkRead(ctx context.Context, userMessageID, userID int64) error
	Publish(ctx context.Context, msg *models.Message) error
}

type MessageService struct {
	messages repositories.MessageRepository
}

func NewMessageService(messages repositories.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

func (s *MessageService) List(ctx context.Context, userID int64, limit int) ([]repositories.UserMessageView, error) {
	return s.messages.GetByUserID(ctx, userID, limit)
}

func (s *MessageService) MarkRead(ctx context.Context, userMessageID, userID int64) error {
	return s.messages.MarkRead(ctx, userMessageID, userID)
}

// Publish stores a collected market message and fans it out to every active
// user as unread.
func (s *MessageService) Publish(ctx context.Context, msg *models.Message) error {
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}
	return s.messages.FanOut(ctx, msg.ID)
}
