package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/models"

	"gorm.io/gorm"
)

// FindRoomForPair returns the room for the unordered pair, or nil when none exists.
func (s *Service) FindRoomForPair(ctx context.Context, userA, userB string) (*models.Room, error) {
	u1, u2 := models.CanonicalPair(userA, userB)

	var rooms []models.Room
	err := s.DB.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", u1, u2).
		Limit(1).
		Find(&rooms).Error
	if err != nil {
		log.Printf("ERROR: Failed to look up room for %s/%s: %v", u1, u2, err)
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, nil
	}
	return &rooms[0], nil
}

func (s *Service) FindRoomByID(ctx context.Context, roomID string) (*models.Room, error) {
	var room models.Room
	err := s.DB.WithContext(ctx).Where("id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("chat room %s not found", roomID)
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// CreateRoom inserts a room for the pair. The unique index over the pair is the
// only guard: a concurrent insert for the same pair surfaces as apperr.ErrConflict.
func (s *Service) CreateRoom(ctx context.Context, userA, userB, name, description string) (*models.Room, error) {
	u1, u2 := models.CanonicalPair(userA, userB)
	room := models.Room{
		Name:            name,
		Description:     description,
		User1ID:         u1,
		User2ID:         u2,
		IsDirectMessage: true,
	}

	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("room for %s/%s already exists", u1, u2)
		}
		log.Printf("ERROR: Failed to create room for %s/%s: %v", u1, u2, err)
		return nil, err
	}
	return &room, nil
}

// ListRoomsForUser returns the user's rooms, most recently active first.
func (s *Service) ListRoomsForUser(ctx context.Context, userID string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("updated_at DESC").
		Order("id ASC").
		Find(&rooms).Error
	if err != nil {
		log.Printf("ERROR: Failed to list rooms for user %s: %v", userID, err)
		return nil, err
	}
	return rooms, nil
}

// TouchRoom records activity on a room.
func (s *Service) TouchRoom(ctx context.Context, roomID string, at time.Time) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		UpdateColumn("updated_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("chat room %s not found", roomID)
	}
	return nil
}

// DeleteRoomsForUser removes every room the user takes part in together with
// their messages. It returns the number of rooms removed.
func (s *Service) DeleteRoomsForUser(ctx context.Context, userID string) (int64, error) {
	var deleted int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomIDs []string
		if err := tx.Model(&models.Room{}).
			Where("user1_id = ? OR user2_id = ?", userID, userID).
			Pluck("id", &roomIDs).Error; err != nil {
			return err
		}

		msgs := tx.Where("user_id = ?", userID)
		if len(roomIDs) > 0 {
			msgs = tx.Where("room_id IN ? OR user_id = ?", roomIDs, userID)
		}
		if err := msgs.Delete(&models.Message{}).Error; err != nil {
			return err
		}

		if len(roomIDs) == 0 {
			return nil
		}
		res := tx.Where("id IN ?", roomIDs).Delete(&models.Room{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		log.Printf("ERROR: Failed to delete rooms for user %s: %v", userID, err)
		return 0, fmt.Errorf("delete rooms for user %s: %w", userID, err)
	}
	return deleted, nil
}
