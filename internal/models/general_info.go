package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GeneralInfo is a freeform knowledge-base entry shown on the site and
// fed to the chat assistant.
type GeneralInfo struct {
	ID        uuid.UUID      `json:"id"`
	Category  string         `json:"category"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Keywords  pq.StringArray `json:"keywords"`
	Priority  *string        `json:"priority,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
