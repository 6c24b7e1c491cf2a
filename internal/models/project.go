package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is a portfolio project with its owned images and related
// tools and tags eagerly loaded.
type Project struct {
	ID            uuid.UUID      `json:"id"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Description   string         `json:"description"`
	Challenge     *string        `json:"challenge,omitempty"`
	Approach      *string        `json:"approach,omitempty"`
	Solution      *string        `json:"solution,omitempty"`
	Results       *string        `json:"results,omitempty"`
	Summary       *string        `json:"summary,omitempty"`
	Status        string         `json:"status"`
	WebsiteURL    *string        `json:"website_url,omitempty"`
	FeaturedOrder *int           `json:"featured_order,omitempty"`
	Priority      *int           `json:"priority,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Images        []ProjectImage `json:"project_images"`
	Tools         []Tool         `json:"tools"`
	Tags          []Tag          `json:"tags"`
}

// ProjectImage is exclusively owned by one project and ordered within
// it by OrderIndex (0-based).
type ProjectImage struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	URL        string    `json:"url"`
	AltText    *string   `json:"alt_text,omitempty"`
	OrderIndex int       `json:"order_index"`
	IsCover    bool      `json:"is_cover"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Project statuses.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusPublished = "published"
)
