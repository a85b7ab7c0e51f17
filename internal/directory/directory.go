// Package directory reads the entities chat borrows from other services:
// users from the identity service and job applications from the hiring workflow.
// Both are read-only from chat's point of view.
package directory

import (
	"context"
	"errors"
	"log"

	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/models"

	"gorm.io/gorm"
)

// Users resolves user identities.
type Users interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUsers(ctx context.Context, userIDs []string) (map[string]models.User, error)
}

// Applications resolves job applications.
type Applications interface {
	GetApplication(ctx context.Context, applicationID uint64) (*models.Application, error)
}

// GormDirectory implements Users and Applications on the shared database.
type GormDirectory struct {
	db *gorm.DB
}

var (
	_ Users        = (*GormDirectory)(nil)
	_ Applications = (*GormDirectory)(nil)
)

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %s not found", userID)
	}
	if err != nil {
		log.Printf("ERROR: Failed to get user %s: %v", userID, err)
		return nil, err
	}
	return &user, nil
}

// GetUsers returns the users that exist among userIDs, keyed by id.
// Unknown ids are simply absent from the result.
func (d *GormDirectory) GetUsers(ctx context.Context, userIDs []string) (map[string]models.User, error) {
	found := make(map[string]models.User, len(userIDs))
	if len(userIDs) == 0 {
		return found, nil
	}

	var users []models.User
	if err := d.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to get %d users: %v", len(userIDs), err)
		return nil, err
	}
	for _, u := range users {
		found[u.ID] = u
	}
	return found, nil
}

func (d *GormDirectory) GetApplication(ctx context.Context, applicationID uint64) (*models.Application, error) {
	var app models.Application
	err := d.db.WithContext(ctx).First(&app, applicationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("application %d not found", applicationID)
	}
	if err != nil {
		log.Printf("ERROR: Failed to get application %d: %v", applicationID, err)
		return nil, err
	}
	return &app, nil
}
