package database

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/models"
)

const projectImageColumns = "id, project_id, url, alt_text, order_index, is_cover, created_at, updated_at"
const journeyImageColumns = "id, journey_id, url, alt_text, order_index, created_at, updated_at"

// AddProjectImage appends an image to a project. When orderIndex is
// nil the image takes the next free index (0-based). The first image of
// a project becomes the cover.
func (c *Client) AddProjectImage(ctx context.Context, projectID uuid.UUID, url string, altText *string, orderIndex *int) (*models.ProjectImage, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errs.Validation("url", "image url is required")
	}

	index := 0
	if orderIndex != nil {
		index = *orderIndex
	} else {
		next, err := c.nextOrderIndex(ctx, projectImageCollection, projectID)
		if err != nil {
			return nil, err
		}
		index = next
	}

	var img models.ProjectImage
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO project_images (project_id, url, alt_text, order_index, is_cover)
		VALUES ($1, $2, $3, $4,
			NOT EXISTS (SELECT 1 FROM project_images WHERE project_id = $1))
		RETURNING `+projectImageColumns,
		projectID, url, altText, index,
	).Scan(&img.ID, &img.ProjectID, &img.URL, &img.AltText, &img.OrderIndex,
		&img.IsCover, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("add project image", "project image", err)
	}
	return &img, nil
}

// AddJourneyImage appends an image to a journey entry. When orderIndex
// is nil the image takes the next free index (1-based).
func (c *Client) AddJourneyImage(ctx context.Context, journeyID uuid.UUID, url string, altText *string, orderIndex *int) (*models.JourneyImage, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errs.Validation("url", "image url is required")
	}

	index := 0
	if orderIndex != nil {
		index = *orderIndex
	} else {
		next, err := c.nextOrderIndex(ctx, journeyImageCollection, journeyID)
		if err != nil {
			return nil, err
		}
		index = next
	}

	var img models.JourneyImage
	err := c.db.QueryRowContext(ctx, `
		INSERT INTO journey_images (journey_id, url, alt_text, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING `+journeyImageColumns,
		journeyID, url, altText, index,
	).Scan(&img.ID, &img.JourneyID, &img.URL, &img.AltText, &img.OrderIndex,
		&img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("add journey image", "journey image", err)
	}
	return &img, nil
}

// GetProjectImage returns one image row, used to locate the storage
// object before deletion.
func (c *Client) GetProjectImage(ctx context.Context, imageID uuid.UUID) (*models.ProjectImage, error) {
	var img models.ProjectImage
	err := c.db.QueryRowContext(ctx,
		"SELECT "+projectImageColumns+" FROM project_images WHERE id = $1", imageID,
	).Scan(&img.ID, &img.ProjectID, &img.URL, &img.AltText, &img.OrderIndex,
		&img.IsCover, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("get project image", "project image", err)
	}
	return &img, nil
}

func (c *Client) GetJourneyImage(ctx context.Context, imageID uuid.UUID) (*models.JourneyImage, error) {
	var img models.JourneyImage
	err := c.db.QueryRowContext(ctx,
		"SELECT "+journeyImageColumns+" FROM journey_images WHERE id = $1", imageID,
	).Scan(&img.ID, &img.JourneyID, &img.URL, &img.AltText, &img.OrderIndex,
		&img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("get journey image", "journey image", err)
	}
	return &img, nil
}

// DeleteProjectImage removes one image row. The caller reindexes the
// remaining siblings afterwards.
func (c *Client) DeleteProjectImage(ctx context.Context, imageID uuid.UUID) error {
	return c.deleteImage(ctx, "project_images", "project image", imageID)
}

func (c *Client) DeleteJourneyImage(ctx context.Context, imageID uuid.UUID) error {
	return c.deleteImage(ctx, "journey_images", "journey image", imageID)
}

func (c *Client) deleteImage(ctx context.Context, table, resource string, imageID uuid.UUID) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = $1", imageID)
	if err != nil {
		return errs.FromDatabase("delete image", resource, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errs.FromDatabase("delete image", resource, err)
	}
	if affected == 0 {
		return errs.NotFound(resource)
	}
	return nil
}

// ReplaceProjectImages swaps the project's entire image set for the
// supplied list inside one transaction. Indices follow the supplied
// OrderIndex when given, otherwise the list position (0-based). The
// first image in the list becomes the cover.
func (c *Client) ReplaceProjectImages(ctx context.Context, projectID uuid.UUID, images []models.ImageInput) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.FromDatabase("replace project images", "project image", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM project_images WHERE project_id = $1", projectID); err != nil {
		return errs.FromDatabase("replace project images", "project image", err)
	}

	for i, img := range images {
		index := i
		if img.OrderIndex != nil {
			index = *img.OrderIndex
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO project_images (project_id, url, alt_text, order_index, is_cover)
			VALUES ($1, $2, $3, $4, $5)`,
			projectID, img.URL, img.AltText, index, i == 0)
		if err != nil {
			return errs.FromDatabase("replace project images", "project image", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return &errs.PartialFailureError{
			Op:        "replace project images",
			Completed: len(images),
			Total:     len(images) + 1,
			Cause:     err,
		}
	}
	return nil
}
