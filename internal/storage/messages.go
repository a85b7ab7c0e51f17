package storage

import (
	"context"
	"log"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/models"
)

// AppendMessage stores a message. Room membership is not checked here;
// that is the conversation service's job.
func (s *Service) AppendMessage(ctx context.Context, roomID, userID, text string) (*models.Message, error) {
	if text == "" {
		return nil, apperr.Validation("message text must not be empty")
	}

	msg := models.Message{
		Text:   text,
		RoomID: roomID,
		UserID: userID,
	}
	if err := s.DB.WithContext(ctx).Create(&msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", roomID, err)
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns the room's messages oldest first.
func (s *Service) ListMessages(ctx context.Context, roomID string, page Page) ([]models.Message, error) {
	page, err := page.normalize()
	if err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Order("id ASC")
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}

	messages := make([]models.Message, 0)
	if err := q.Find(&messages).Error; err != nil {
		log.Printf("ERROR: Failed to get chat history for room %s: %v", roomID, err)
		return nil, err
	}
	return messages, nil
}

// LastMessage returns the newest message of the room, or nil for an empty room.
func (s *Service) LastMessage(ctx context.Context, roomID string) (*models.Message, error) {
	var messages []models.Message
	err := s.DB.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(1).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}
