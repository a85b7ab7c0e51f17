package models

import "time"

// Message is a persisted chat message. Messages are append-only.
// Within a room they are ordered by CreatedAt, ties broken by ID.
type Message struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Text   string `gorm:"type:text;not null" json:"text"`
	RoomID string `gorm:"size:36;not null;index" json:"room_id"`
	UserID string `gorm:"size:64;not null;index" json:"user_id"`
	// CreatedAt is the ordering key.
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Room *Room `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Message) TableName() string { return "chat_messages" }
