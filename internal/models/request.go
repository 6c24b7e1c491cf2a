package models

import "github.com/google/uuid"

// ImageInput is an image supplied inline with a create or update
// request. OrderIndex is optional; omitted images are appended in the
// order supplied.
type ImageInput struct {
	URL        string  `json:"url"`
	AltText    *string `json:"alt_text,omitempty"`
	OrderIndex *int    `json:"order_index,omitempty"`
}

type CreateProjectRequest struct {
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	Challenge     *string      `json:"challenge,omitempty"`
	Approach      *string      `json:"approach,omitempty"`
	Solution      *string      `json:"solution,omitempty"`
	Results       *string      `json:"results,omitempty"`
	Summary       *string      `json:"summary,omitempty"`
	Status        *string      `json:"status,omitempty"`
	WebsiteURL    *string      `json:"website_url,omitempty"`
	FeaturedOrder *int         `json:"featured_order,omitempty"`
	Priority      *int         `json:"priority,omitempty"`
	Images        []ImageInput `json:"images,omitempty"`
	ToolIDs       []uuid.UUID  `json:"tool_ids,omitempty"`
	TagIDs        []uuid.UUID  `json:"tag_ids,omitempty"`
}

// UpdateProjectRequest carries only the fields to change. Nil pointer
// fields are left untouched. A nil Images/ToolIDs/TagIDs slice leaves
// the set alone; a non-nil slice (including an empty one) replaces it
// entirely.
type UpdateProjectRequest struct {
	Title         *string      `json:"title,omitempty"`
	Slug          *string      `json:"slug,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Challenge     *string      `json:"challenge,omitempty"`
	Approach      *string      `json:"approach,omitempty"`
	Solution      *string      `json:"solution,omitempty"`
	Results       *string      `json:"results,omitempty"`
	Summary       *string      `json:"summary,omitempty"`
	Status        *string      `json:"status,omitempty"`
	WebsiteURL    *string      `json:"website_url,omitempty"`
	FeaturedOrder *int         `json:"featured_order,omitempty"`
	Priority      *int         `json:"priority,omitempty"`
	Images        []ImageInput `json:"images,omitempty"`
	ToolIDs       []uuid.UUID  `json:"tool_ids,omitempty"`
	TagIDs        []uuid.UUID  `json:"tag_ids,omitempty"`
}

type CreateJourneyRequest struct {
	Title        string       `json:"title"`
	Subtitle     *string      `json:"subtitle,omitempty"`
	Year         string       `json:"year"`
	Description  string       `json:"description"`
	Skills       []string     `json:"skills"`
	Icon         string       `json:"icon"`
	Color        string       `json:"color"`
	DisplayOrder *int         `json:"display_order,omitempty"`
	Images       []ImageInput `json:"images,omitempty"`
}

type UpdateJourneyRequest struct {
	Title        *string   `json:"title,omitempty"`
	Subtitle     *string   `json:"subtitle,omitempty"`
	Year         *string   `json:"year,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	Icon         *string   `json:"icon,omitempty"`
	Color        *string   `json:"color,omitempty"`
	DisplayOrder *int      `json:"display_order,omitempty"`
}

// CreateToolRequest creates a tool or tag. Slug is derived from Name
// when omitted.
type CreateToolRequest struct {
	Name            string  `json:"name"`
	Slug            *string `json:"slug,omitempty"`
	Description     *string `json:"description,omitempty"`
	Icon            *string `json:"icon,omitempty"`
	ShowInFilter    *bool   `json:"show_in_filter,omitempty"`
	DisplayPriority *int    `json:"display_priority,omitempty"`
}

type UpdateToolRequest struct {
	Name            *string `json:"name,omitempty"`
	Slug            *string `json:"slug,omitempty"`
	Description     *string `json:"description,omitempty"`
	Icon            *string `json:"icon,omitempty"`
	ShowInFilter    *bool   `json:"show_in_filter,omitempty"`
	DisplayPriority *int    `json:"display_priority,omitempty"`
}

// UpdateImageOrderRequest assigns order indices by position in
// ImageIDs. Ids belonging to a different owner are ignored.
type UpdateImageOrderRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids"`
}

// GeneralInfoRequest creates a new entry when ID is nil and updates the
// existing one otherwise.
type GeneralInfoRequest struct {
	ID       *uuid.UUID `json:"id,omitempty"`
	Category string     `json:"category"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Keywords []string   `json:"keywords,omitempty"`
	Priority *string    `json:"priority,omitempty"`
}
