package config

import "time"

const (
	// Messages
	MaxMessageLength = 4000
	MaxPageSize      = 200

	// Realtime connections
	SendBufferSize = 64
	WriteWait      = 10 * time.Second
	PongWait       = 60 * time.Second
	PingPeriod     = (PongWait * 9) / 10
	// MaxFrameSize fits a maximum-length message plus the JSON envelope even
	// when every rune is escaped as a surrogate pair ("\ud83d\ude00", 12 bytes).
	MaxFrameSize = MaxMessageLength*maxEscapedRune + 1024

	// Connection tokens
	ConnectionTokenAudience = "chat-gateway"
	ConnectionTokenPurpose  = "ws"

	// Redis
	MessageBusChannel   = "chat:messages"
	UsedTokenKeyPrefix  = "chat:wstoken:used:"
	ApplicationAccepted = "accepted"
)

const maxEscapedRune = 12
