package models

import (
	"time"

	"github.com/google/uuid"
)

// Tool is a technology a project was built with. Projects reference
// tools through the project_tools join table.
type Tool struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description,omitempty"`
	Icon            *string   `json:"icon,omitempty"`
	ShowInFilter    bool      `json:"show_in_filter"`
	DisplayPriority *int      `json:"display_priority,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Tag is a free-form label for projects, shaped like Tool and joined
// through project_tags.
type Tag struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description,omitempty"`
	Icon            *string   `json:"icon,omitempty"`
	ShowInFilter    bool      `json:"show_in_filter"`
	DisplayPriority *int      `json:"display_priority,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
