package models_test

import (
	"reflect"
	"testing"

	"jobboard/chat/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	user := &models.User{Username: "alice"}
	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	err := user.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	assert.NoError(t, err)
	_, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
}

func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	user := &models.User{ID: "employer-7", Username: "acme"}

	assert.NoError(t, user.BeforeCreate(nil))
	assert.Equal(t, "employer-7", user.ID)
}

func TestRoomBeforeCreate(t *testing.T) {
	room := &models.Room{User1ID: "a", User2ID: "b"}
	assert.NoError(t, room.BeforeCreate(nil))
	_, err := uuid.Parse(room.ID)
	assert.NoError(t, err)

	fixed := &models.Room{ID: "room-1"}
	assert.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "room-1", fixed.ID)
}

func TestCanonicalPair(t *testing.T) {
	a, b := models.CanonicalPair("zed", "amy")
	assert.Equal(t, "amy", a)
	assert.Equal(t, "zed", b)

	c, d := models.CanonicalPair("amy", "zed")
	assert.Equal(t, a, c)
	assert.Equal(t, b, d)
}

func TestRoomParticipants(t *testing.T) {
	room := &models.Room{User1ID: "amy", User2ID: "zed"}

	assert.True(t, room.HasParticipant("amy"))
	assert.True(t, room.HasParticipant("zed"))
	assert.False(t, room.HasParticipant("bob"))
	assert.False(t, room.HasParticipant(""))

	assert.Equal(t, "zed", room.OtherParticipant("amy"))
	assert.Equal(t, "amy", room.OtherParticipant("zed"))
	assert.Equal(t, [2]string{"amy", "zed"}, room.Participants())
}

// TestRoomStructTags guards the pair uniqueness index against accidental tag edits.
func TestRoomStructTags(t *testing.T) {
	roomType := reflect.TypeOf(models.Room{})

	u1, found := roomType.FieldByName("User1ID")
	assert.True(t, found)
	assert.Contains(t, u1.Tag.Get("gorm"), "uniqueIndex:idx_chat_rooms_pair,priority:1")

	u2, found := roomType.FieldByName("User2ID")
	assert.True(t, found)
	assert.Contains(t, u2.Tag.Get("gorm"), "uniqueIndex:idx_chat_rooms_pair,priority:2")

	owner, found := roomType.FieldByName("User1")
	assert.True(t, found)
	assert.Contains(t, owner.Tag.Get("gorm"), "OnDelete:CASCADE")
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "chat_rooms", models.Room{}.TableName())
	assert.Equal(t, "chat_messages", models.Message{}.TableName())
	assert.Equal(t, "users", models.User{}.TableName())
	assert.Equal(t, "job_applications", models.Application{}.TableName())
}
