package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/models"
)

const journeyColumns = `id, title, subtitle, year, description, skills, icon, color,
	display_order, created_at, updated_at`

// CreateJourneyEntry inserts a timeline entry and any initial images.
// DisplayOrder defaults to the end of the timeline when omitted.
func (c *Client) CreateJourneyEntry(ctx context.Context, req models.CreateJourneyRequest) (*models.JourneyEntry, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errs.Validation("title", "title is required")
	}
	if strings.TrimSpace(req.Year) == "" {
		return nil, errs.Validation("year", "year is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, errs.Validation("description", "description is required")
	}
	if strings.TrimSpace(req.Icon) == "" {
		return nil, errs.Validation("icon", "icon is required")
	}
	if strings.TrimSpace(req.Color) == "" {
		return nil, errs.Validation("color", "color is required")
	}

	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		err := c.db.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(display_order) + 1, 0) FROM journey").Scan(&displayOrder)
		if err != nil {
			return nil, errs.FromDatabase("create journey entry", "journey entry", err)
		}
	}

	skills := req.Skills
	if skills == nil {
		skills = []string{}
	}

	var entry models.JourneyEntry
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO journey (title, subtitle, year, description, skills, icon, color, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+journeyColumns,
		req.Title, req.Subtitle, req.Year, req.Description, pq.Array(skills),
		req.Icon, req.Color, displayOrder,
	).Scan(&entry.ID, &entry.Title, &entry.Subtitle, &entry.Year, &entry.Description,
		&entry.Skills, &entry.Icon, &entry.Color, &entry.DisplayOrder,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("create journey entry", "journey entry", err)
	}
	entry.Images = []models.JourneyImage{}

	for _, img := range req.Images {
		if _, err := c.AddJourneyImage(ctx, entry.ID, img.URL, img.AltText, img.OrderIndex); err != nil {
			return nil, err
		}
	}
	if len(req.Images) > 0 {
		return c.GetJourneyEntry(ctx, entry.ID)
	}
	return &entry, nil
}

// ListJourneyEntries returns all timeline entries ordered by
// display_order ascending, each with its images in order.
func (c *Client) ListJourneyEntries(ctx context.Context) ([]models.JourneyEntry, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT "+journeyColumns+" FROM journey ORDER BY display_order ASC")
	if err != nil {
		return nil, errs.FromDatabase("list journey entries", "journey entry", err)
	}
	defer rows.Close()

	entries := []models.JourneyEntry{}
	for rows.Next() {
		var e models.JourneyEntry
		err := rows.Scan(&e.ID, &e.Title, &e.Subtitle, &e.Year, &e.Description,
			&e.Skills, &e.Icon, &e.Color, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, errs.FromDatabase("scan journey entry", "journey entry", err)
		}
		e.Images = []models.JourneyImage{}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.FromDatabase("list journey entries", "journey entry", err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	byID := make(map[uuid.UUID]*models.JourneyEntry, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
		ids = append(ids, entries[i].ID)
	}

	imgRows, err := c.db.QueryContext(ctx,
		"SELECT "+journeyImageColumns+" FROM journey_images WHERE journey_id = ANY($1) ORDER BY order_index ASC, created_at ASC",
		pq.Array(ids))
	if err != nil {
		return nil, errs.FromDatabase("load journey images", "journey image", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img models.JourneyImage
		err := imgRows.Scan(&img.ID, &img.JourneyID, &img.URL, &img.AltText,
			&img.OrderIndex, &img.CreatedAt, &img.UpdatedAt)
		if err != nil {
			return nil, errs.FromDatabase("scan journey image", "journey image", err)
		}
		if e, ok := byID[img.JourneyID]; ok {
			e.Images = append(e.Images, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return nil, errs.FromDatabase("load journey images", "journey image", err)
	}

	return entries, nil
}

// GetJourneyEntry returns one timeline entry with its images in order.
func (c *Client) GetJourneyEntry(ctx context.Context, id uuid.UUID) (*models.JourneyEntry, error) {
	var e models.JourneyEntry
	err := c.db.QueryRowContext(ctx,
		"SELECT "+journeyColumns+" FROM journey WHERE id = $1", id,
	).Scan(&e.ID, &e.Title, &e.Subtitle, &e.Year, &e.Description,
		&e.Skills, &e.Icon, &e.Color, &e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("get journey entry", "journey entry", err)
	}

	e.Images = []models.JourneyImage{}
	rows, err := c.db.QueryContext(ctx,
		"SELECT "+journeyImageColumns+" FROM journey_images WHERE journey_id = $1 ORDER BY order_index ASC, created_at ASC",
		id)
	if err != nil {
		return nil, errs.FromDatabase("load journey images", "journey image", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.JourneyImage
		err := rows.Scan(&img.ID, &img.JourneyID, &img.URL, &img.AltText,
			&img.OrderIndex, &img.CreatedAt, &img.UpdatedAt)
		if err != nil {
			return nil, errs.FromDatabase("scan journey image", "journey image", err)
		}
		e.Images = append(e.Images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.FromDatabase("load journey images", "journey image", err)
	}

	return &e, nil
}

// UpdateJourneyEntry applies only the provided fields.
func (c *Client) UpdateJourneyEntry(ctx context.Context, id uuid.UUID, req models.UpdateJourneyRequest) (*models.JourneyEntry, error) {
	set := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Subtitle != nil {
		add("subtitle", *req.Subtitle)
	}
	if req.Year != nil {
		add("year", *req.Year)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Skills != nil {
		add("skills", pq.Array(req.Skills))
	}
	if req.Icon != nil {
		add("icon", *req.Icon)
	}
	if req.Color != nil {
		add("color", *req.Color)
	}
	if req.DisplayOrder != nil {
		add("display_order", *req.DisplayOrder)
	}

	if len(set) == 0 {
		return c.GetJourneyEntry(ctx, id)
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE journey SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, errs.FromDatabase("update journey entry", "journey entry", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errs.FromDatabase("update journey entry", "journey entry", err)
	}
	if affected == 0 {
		return nil, errs.NotFound("journey entry")
	}

	return c.GetJourneyEntry(ctx, id)
}

// DeleteJourneyEntry removes the entry and its images in one
// transaction, images first.
func (c *Client) DeleteJourneyEntry(ctx context.Context, id uuid.UUID) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.FromDatabase("delete journey entry", "journey entry", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM journey_images WHERE journey_id = $1", id); err != nil {
		return errs.FromDatabase("delete journey images", "journey entry", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM journey WHERE id = $1", id)
	if err != nil {
		return errs.FromDatabase("delete journey entry", "journey entry", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errs.FromDatabase("delete journey entry", "journey entry", err)
	}
	if affected == 0 {
		return errs.NotFound("journey entry")
	}

	return tx.Commit()
}
