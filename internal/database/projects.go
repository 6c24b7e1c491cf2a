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

const projectColumns = `id, title, slug, description, challenge, approach, solution, results,
	summary, status, website_url, featured_order, priority, created_at, updated_at`

// CreateProject inserts a new project and, when supplied, its initial
// images and tool/tag associations. Slug collisions fail with a
// ConflictError and leave the store unchanged.
func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errs.Validation("title", "title is required")
	}
	if strings.TrimSpace(req.Slug) == "" {
		return nil, errs.Validation("slug", "slug is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, errs.Validation("description", "description is required")
	}

	status := models.ProjectStatusDraft
	if req.Status != nil {
		status = *req.Status
	}

	var project models.Project
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, slug, description, challenge, approach, solution, results,
			summary, status, website_url, featured_order, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+projectColumns,
		req.Title, req.Slug, req.Description, req.Challenge, req.Approach, req.Solution,
		req.Results, req.Summary, status, req.WebsiteURL, req.FeaturedOrder, req.Priority,
	).Scan(
		&project.ID, &project.Title, &project.Slug, &project.Description, &project.Challenge,
		&project.Approach, &project.Solution, &project.Results, &project.Summary, &project.Status,
		&project.WebsiteURL, &project.FeaturedOrder, &project.Priority, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, errs.FromDatabase("create project", "project", err)
	}

	if len(req.Images) > 0 {
		if err := c.ReplaceProjectImages(ctx, project.ID, req.Images); err != nil {
			return nil, err
		}
	}
	if req.ToolIDs != nil {
		if err := c.ReplaceAssociations(ctx, project.ID, ProjectTools, req.ToolIDs); err != nil {
			return nil, err
		}
	}
	if req.TagIDs != nil {
		if err := c.ReplaceAssociations(ctx, project.ID, ProjectTags, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return c.GetProjectByID(ctx, project.ID)
}

// GetProjectByID returns a project with images, tools and tags eagerly
// loaded.
func (c *Client) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return c.getProject(ctx, "id = $1", id)
}

// GetProjectBySlug returns a project with images, tools and tags
// eagerly loaded.
func (c *Client) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return c.getProject(ctx, "slug = $1", slug)
}

func (c *Client) getProject(ctx context.Context, where string, arg any) (*models.Project, error) {
	var project models.Project
	err := c.db.QueryRowContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE "+where, arg,
	).Scan(
		&project.ID, &project.Title, &project.Slug, &project.Description, &project.Challenge,
		&project.Approach, &project.Solution, &project.Results, &project.Summary, &project.Status,
		&project.WebsiteURL, &project.FeaturedOrder, &project.Priority, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, errs.FromDatabase("get project", "project", err)
	}

	if err := c.attachProjectRelations(ctx, []*models.Project{&project}); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns all projects ordered by creation time
// descending, with relations eagerly loaded. An empty list is a valid
// result.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC")
	if err != nil {
		return nil, errs.FromDatabase("list projects", "project", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Description, &p.Challenge,
			&p.Approach, &p.Solution, &p.Results, &p.Summary, &p.Status,
			&p.WebsiteURL, &p.FeaturedOrder, &p.Priority, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, errs.FromDatabase("scan project", "project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.FromDatabase("list projects", "project", err)
	}

	refs := make([]*models.Project, len(projects))
	for i := range projects {
		refs[i] = &projects[i]
	}
	if err := c.attachProjectRelations(ctx, refs); err != nil {
		return nil, err
	}
	return projects, nil
}

// attachProjectRelations batch-loads images, tools and tags for the
// given projects.
func (c *Client) attachProjectRelations(ctx context.Context, projects []*models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*models.Project, len(projects))
	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		p.Images = []models.ProjectImage{}
		p.Tools = []models.Tool{}
		p.Tags = []models.Tag{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, project_id, url, alt_text, order_index, is_cover, created_at, updated_at
		FROM project_images
		WHERE project_id = ANY($1)
		ORDER BY order_index ASC, created_at ASC
	`, pq.Array(ids))
	if err != nil {
		return errs.FromDatabase("load project images", "project image", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.ProjectImage
		err := rows.Scan(&img.ID, &img.ProjectID, &img.URL, &img.AltText,
			&img.OrderIndex, &img.IsCover, &img.CreatedAt, &img.UpdatedAt)
		if err != nil {
			return errs.FromDatabase("scan project image", "project image", err)
		}
		if p, ok := byID[img.ProjectID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return errs.FromDatabase("load project images", "project image", err)
	}

	toolRows, err := c.db.QueryContext(ctx, `
		SELECT pt.project_id, t.id, t.name, t.slug, t.description, t.icon,
			t.show_in_filter, t.display_priority, t.created_at, t.updated_at
		FROM project_tools pt
		JOIN tools t ON t.id = pt.tool_id
		WHERE pt.project_id = ANY($1)
		ORDER BY t.name ASC
	`, pq.Array(ids))
	if err != nil {
		return errs.FromDatabase("load project tools", "tool", err)
	}
	defer toolRows.Close()

	for toolRows.Next() {
		var projectID uuid.UUID
		var t models.Tool
		err := toolRows.Scan(&projectID, &t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon,
			&t.ShowInFilter, &t.DisplayPriority, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return errs.FromDatabase("scan project tool", "tool", err)
		}
		if p, ok := byID[projectID]; ok {
			p.Tools = append(p.Tools, t)
		}
	}
	if err := toolRows.Err(); err != nil {
		return errs.FromDatabase("load project tools", "tool", err)
	}

	tagRows, err := c.db.QueryContext(ctx, `
		SELECT pt.project_id, t.id, t.name, t.slug, t.description, t.icon,
			t.show_in_filter, t.display_priority, t.created_at, t.updated_at
		FROM project_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.project_id = ANY($1)
		ORDER BY t.name ASC
	`, pq.Array(ids))
	if err != nil {
		return errs.FromDatabase("load project tags", "tag", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var projectID uuid.UUID
		var t models.Tag
		err := tagRows.Scan(&projectID, &t.ID, &t.Name, &t.Slug, &t.Description, &t.Icon,
			&t.ShowInFilter, &t.DisplayPriority, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return errs.FromDatabase("scan project tag", "tag", err)
		}
		if p, ok := byID[projectID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return tagRows.Err()
}

// UpdateProject applies only the provided fields. A non-nil Images,
// ToolIDs or TagIDs slice replaces the corresponding set entirely;
// nil leaves it untouched.
func (c *Client) UpdateProject(ctx context.Context, id uuid.UUID, req models.UpdateProjectRequest) (*models.Project, error) {
	set := []string{}
	args := []any{}
	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Slug != nil {
		add("slug", *req.Slug)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Challenge != nil {
		add("challenge", *req.Challenge)
	}
	if req.Approach != nil {
		add("approach", *req.Approach)
	}
	if req.Solution != nil {
		add("solution", *req.Solution)
	}
	if req.Results != nil {
		add("results", *req.Results)
	}
	if req.Summary != nil {
		add("summary", *req.Summary)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.WebsiteURL != nil {
		add("website_url", *req.WebsiteURL)
	}
	if req.FeaturedOrder != nil {
		add("featured_order", *req.FeaturedOrder)
	}
	if req.Priority != nil {
		add("priority", *req.Priority)
	}

	if len(set) > 0 {
		set = append(set, "updated_at = NOW()")
		args = append(args, id)
		query := fmt.Sprintf("UPDATE projects SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))
		result, err := c.db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, errs.FromDatabase("update project", "project", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return nil, errs.FromDatabase("update project", "project", err)
		}
		if affected == 0 {
			return nil, errs.NotFound("project")
		}
	} else {
		// Nothing but relations to update; still verify the project exists.
		var exists bool
		err := c.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", id).Scan(&exists)
		if err != nil {
			return nil, errs.FromDatabase("update project", "project", err)
		}
		if !exists {
			return nil, errs.NotFound("project")
		}
	}

	if req.Images != nil {
		if err := c.ReplaceProjectImages(ctx, id, req.Images); err != nil {
			return nil, err
		}
	}
	if req.ToolIDs != nil {
		if err := c.ReplaceAssociations(ctx, id, ProjectTools, req.ToolIDs); err != nil {
			return nil, err
		}
	}
	if req.TagIDs != nil {
		if err := c.ReplaceAssociations(ctx, id, ProjectTags, req.TagIDs); err != nil {
			return nil, err
		}
	}

	return c.GetProjectByID(ctx, id)
}

// DeleteProject removes the project and all dependent rows. Images and
// join rows go first so no orphans survive a partial failure, all
// inside one transaction. Deleting an absent project fails with a
// NotFoundError; absent dependents are not an error.
func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.FromDatabase("delete project", "project", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM project_images WHERE project_id = $1",
		"DELETE FROM project_tools WHERE project_id = $1",
		"DELETE FROM project_tags WHERE project_id = $1",
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return errs.FromDatabase("delete project dependents", "project", err)
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return errs.FromDatabase("delete project", "project", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errs.FromDatabase("delete project", "project", err)
	}
	if affected == 0 {
		return errs.NotFound("project")
	}

	if err := tx.Commit(); err != nil {
		return errs.FromDatabase("delete project", "project", err)
	}
	return nil
}
