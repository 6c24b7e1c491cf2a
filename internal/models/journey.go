package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JourneyEntry is one entry on the career timeline. Skills keep their
// supplied order.
type JourneyEntry struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Subtitle     *string        `json:"subtitle,omitempty"`
	Year         string         `json:"year"`
	Description  string         `json:"description"`
	Skills       pq.StringArray `json:"skills"`
	Icon         string         `json:"icon"`
	Color        string         `json:"color"`
	DisplayOrder int            `json:"display_order"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Images       []JourneyImage `json:"journey_images"`
}

// JourneyImage is exclusively owned by one journey entry and ordered
// within it by OrderIndex (1-based).
type JourneyImage struct {
	ID         uuid.UUID `json:"id"`
	JourneyID  uuid.UUID `json:"journey_id"`
	URL        string    `json:"url"`
	AltText    *string   `json:"alt_text,omitempty"`
	OrderIndex int       `json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
