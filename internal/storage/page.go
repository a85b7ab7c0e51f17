package storage

import (
	"jobboard/chat/internal/apperr"
	"jobboard/chat/internal/config"
)

// Page bounds a message listing. A zero Limit returns the whole room.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) normalize() (Page, error) {
	if p.Offset < 0 || p.Limit < 0 {
		return p, apperr.Validation("offset and limit must not be negative")
	}
	if p.Limit > config.MaxPageSize {
		p.Limit = config.MaxPageSize
	}
	return p, nil
}
