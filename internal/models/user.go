package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity record owned by the identity service.
// Chat only reads it and references it from rooms and messages.
type User struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	Username string `gorm:"size:255;not null" json:"username"`
}

func (User) TableName() string { return "users" }

// BeforeCreate generates a UUID when ID is empty.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
