package storage

import (
	"context"
	"time"

	"jobboard/chat/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// RoomStore persists direct-message rooms, at most one per unordered user pair.
type RoomStore interface {
	FindRoomForPair(ctx context.Context, userA, userB string) (*models.Room, error)
	FindRoomByID(ctx context.Context, roomID string) (*models.Room, error)
	CreateRoom(ctx context.Context, userA, userB, name, description string) (*models.Room, error)
	ListRoomsForUser(ctx context.Context, userID string) ([]models.Room, error)
	TouchRoom(ctx context.Context, roomID string, at time.Time) error
	DeleteRoomsForUser(ctx context.Context, userID string) (int64, error)
}

// MessageStore persists the append-only message log of each room.
type MessageStore interface {
	AppendMessage(ctx context.Context, roomID, userID, text string) (*models.Message, error)
	ListMessages(ctx context.Context, roomID string, page Page) ([]models.Message, error)
	LastMessage(ctx context.Context, roomID string) (*models.Message, error)
}

// Service implements RoomStore and MessageStore on PostgreSQL via GORM.
// Redis is optional and only used by components that share the client.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
}

var (
	_ RoomStore    = (*Service)(nil)
	_ MessageStore = (*Service)(nil)
)

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
	}
}

// Ping checks that the database (and Redis, when configured) answer.
func (s *Service) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if s.Redis != nil {
		return s.Redis.Ping(ctx).Err()
	}
	return nil
}
