package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room is a direct-message conversation between exactly two users.
// The pair is stored in canonical order (User1ID < User2ID) so the unique
// index over it does not depend on who started the conversation.
type Room struct {
	// ID is the unique identifier for the room (UUID).
	ID string `gorm:"primaryKey;size:36" json:"id"`
	// Name is derived from the participants' usernames when the room is created.
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	User1ID string `gorm:"size:64;not null;uniqueIndex:idx_chat_rooms_pair,priority:1" json:"user1_id"`
	User2ID string `gorm:"size:64;not null;uniqueIndex:idx_chat_rooms_pair,priority:2;index" json:"user2_id"`

	IsDirectMessage bool `gorm:"not null;default:true" json:"is_direct_message"`

	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt doubles as the "last activity" marker; sending a message touches it.
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	User1 *User `gorm:"foreignKey:User1ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User2 *User `gorm:"foreignKey:User2ID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Room) TableName() string { return "chat_rooms" }

// BeforeCreate assigns a UUID when the caller did not set one.
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// HasParticipant reports whether userID is one of the two room members.
func (r *Room) HasParticipant(userID string) bool {
	return userID != "" && (r.User1ID == userID || r.User2ID == userID)
}

// OtherParticipant returns the member that is not userID.
func (r *Room) OtherParticipant(userID string) string {
	if r.User1ID == userID {
		return r.User2ID
	}
	return r.User1ID
}

// Participants returns both members in storage order.
func (r *Room) Participants() [2]string {
	return [2]string{r.User1ID, r.User2ID}
}

// CanonicalPair orders two user ids the way rooms store them.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}
