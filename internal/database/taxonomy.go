package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/models"
)

// Tools and tags share one table shape; taxonomyTable selects which.
type taxonomyTable struct {
	table    string
	resource string
}

var (
	toolsTable = taxonomyTable{table: "tools", resource: "tool"}
	tagsTable  = taxonomyTable{table: "tags", resource: "tag"}
)

const taxonomyColumns = "id, name, slug, description, icon, show_in_filter, display_priority, created_at, updated_at"

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a display name: lowercase, runs of
// non-alphanumerics collapsed to single dashes, no leading or trailing
// dash.
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func (c *Client) ListTools(ctx context.Context) ([]models.Tool, error) {
	rows, err := c.listTaxonomy(ctx, toolsTable)
	if err != nil {
		return nil, err
	}
	tools := make([]models.Tool, len(rows))
	for i, r := range rows {
		tools[i] = models.Tool(r)
	}
	return tools, nil
}

func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := c.listTaxonomy(ctx, tagsTable)
	if err != nil {
		return nil, err
	}
	tags := make([]models.Tag, len(rows))
	for i, r := range rows {
		tags[i] = models.Tag(r)
	}
	return tags, nil
}

func (c *Client) GetToolByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	row, err := c.getTaxonomy(ctx, toolsTable, id)
	if err != nil {
		return nil, err
	}
	tool := models.Tool(*row)
	return &tool, nil
}

func (c *Client) GetTagByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	row, err := c.getTaxonomy(ctx, tagsTable, id)
	if err != nil {
		return nil, err
	}
	tag := models.Tag(*row)
	return &tag, nil
}

// CreateTool inserts a tool. Slug is derived from Name when omitted; a
// colliding slug fails with a ConflictError.
func (c *Client) CreateTool(ctx context.Context, req models.CreateToolRequest) (*models.Tool, error) {
	row, err := c.createTaxonomy(ctx, toolsTable, req)
	if err != nil {
		return nil, err
	}
	tool := models.Tool(*row)
	return &tool, nil
}

func (c *Client) CreateTag(ctx context.Context, req models.CreateToolRequest) (*models.Tag, error) {
	row, err := c.createTaxonomy(ctx, tagsTable, req)
	if err != nil {
		return nil, err
	}
	tag := models.Tag(*row)
	return &tag, nil
}

func (c *Client) UpdateTool(ctx context.Context, id uuid.UUID, req models.UpdateToolRequest) (*models.Tool, error) {
	row, err := c.updateTaxonomy(ctx, toolsTable, id, req)
	if err != nil {
		return nil, err
	}
	tool := models.Tool(*row)
	return &tool, nil
}

func (c *Client) UpdateTag(ctx context.Context, id uuid.UUID, req models.UpdateToolRequest) (*models.Tag, error) {
	row, err := c.updateTaxonomy(ctx, tagsTable, id, req)
	if err != nil {
		return nil, err
	}
	tag := models.Tag(*row)
	return &tag, nil
}

// DeleteTool removes a tool and its join rows referencing it.
func (c *Client) DeleteTool(ctx context.Context, id uuid.UUID) error {
	return c.deleteTaxonomy(ctx, toolsTable, ProjectTools, id)
}

func (c *Client) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return c.deleteTaxonomy(ctx, tagsTable, ProjectTags, id)
}

func (c *Client) listTaxonomy(ctx context.Context, tt taxonomyTable) ([]models.Tool, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT "+taxonomyColumns+" FROM "+tt.table+" ORDER BY name ASC")
	if err != nil {
		return nil, errs.FromDatabase("list "+tt.table, tt.resource, err)
	}
	defer rows.Close()

	out := []models.Tool{}
	for rows.Next() {
		var t models.Tool
		err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon,
			&t.ShowInFilter, &t.DisplayPriority, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, errs.FromDatabase("scan "+tt.resource, tt.resource, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (c *Client) getTaxonomy(ctx context.Context, tt taxonomyTable, id uuid.UUID) (*models.Tool, error) {
	var t models.Tool
	err := c.db.QueryRowContext(ctx,
		"SELECT "+taxonomyColumns+" FROM "+tt.table+" WHERE id = $1", id,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon,
		&t.ShowInFilter, &t.DisplayPriority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("get "+tt.resource, tt.resource, err)
	}
	return &t, nil
}

func (c *Client) createTaxonomy(ctx context.Context, tt taxonomyTable, req models.CreateToolRequest) (*models.Tool, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errs.Validation("name", "name is required")
	}

	slug := Slugify(req.Name)
	if req.Slug != nil && strings.TrimSpace(*req.Slug) != "" {
		slug = *req.Slug
	}

	showInFilter := true
	if req.ShowInFilter != nil {
		showInFilter = *req.ShowInFilter
	}

	var t models.Tool
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO `+tt.table+` (name, slug, description, icon, show_in_filter, display_priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+taxonomyColumns,
		req.Name, slug, req.Description, req.Icon, showInFilter, req.DisplayPriority,
	).Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon,
		&t.ShowInFilter, &t.DisplayPriority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("create "+tt.resource, tt.resource, err)
	}
	return &t, nil
}

func (c *Client) updateTaxonomy(ctx context.Context, tt taxonomyTable, id uuid.UUID, req models.UpdateToolRequest) (*models.Tool, error) {
	set := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Slug != nil {
		add("slug", *req.Slug)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Icon != nil {
		add("icon", *req.Icon)
	}
	if req.ShowInFilter != nil {
		add("show_in_filter", *req.ShowInFilter)
	}
	if req.DisplayPriority != nil {
		add("display_priority", *req.DisplayPriority)
	}

	if len(set) == 0 {
		return c.getTaxonomy(ctx, tt, id)
	}

	set = append(set, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		tt.table, strings.Join(set, ", "), len(args), taxonomyColumns)

	var t models.Tool
	err := c.db.QueryRowContext(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon,
		&t.ShowInFilter, &t.DisplayPriority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("update "+tt.resource, tt.resource, err)
	}
	return &t, nil
}

func (c *Client) deleteTaxonomy(ctx context.Context, tt taxonomyTable, at AssociationTable, id uuid.UUID) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.FromDatabase("delete "+tt.resource, tt.resource, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM "+at.Table+" WHERE "+at.ChildColumn+" = $1", id); err != nil {
		return errs.FromDatabase("delete "+tt.resource+" associations", tt.resource, err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM "+tt.table+" WHERE id = $1", id)
	if err != nil {
		return errs.FromDatabase("delete "+tt.resource, tt.resource, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errs.FromDatabase("delete "+tt.resource, tt.resource, err)
	}
	if affected == 0 {
		return errs.NotFound(tt.resource)
	}

	return tx.Commit()
}
