package database

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/errs"
)

// imageCollection describes one owner→images table. The base differs
// between the two collections: project images count from 0, journey
// images from 1.
type imageCollection struct {
	table       string
	ownerColumn string
	base        int
}

var (
	projectImageCollection = imageCollection{table: "project_images", ownerColumn: "project_id", base: 0}
	journeyImageCollection = imageCollection{table: "journey_images", ownerColumn: "journey_id", base: 1}
)

// ImageRow is the slice of an image row the ordering engine needs.
type ImageRow struct {
	ID         uuid.UUID
	OrderIndex int
	CreatedAt  time.Time
}

// IndexAssignment instructs one row to take a new order index.
type IndexAssignment struct {
	ID         uuid.UUID
	OrderIndex int
}

// ReindexPlan computes the assignments that restore a dense, contiguous
// sequence starting at base. Rows keep their current relative order;
// ties on order_index fall back to creation order, then id. Only rows
// whose index actually changes are returned, so re-running the plan on
// an already-dense collection yields no work.
func ReindexPlan(rows []ImageRow, base int) []IndexAssignment {
	sorted := make([]ImageRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OrderIndex != sorted[j].OrderIndex {
			return sorted[i].OrderIndex < sorted[j].OrderIndex
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	var plan []IndexAssignment
	for i, row := range sorted {
		want := base + i
		if row.OrderIndex != want {
			plan = append(plan, IndexAssignment{ID: row.ID, OrderIndex: want})
		}
	}
	return plan
}

// ExplicitOrderPlan assigns each id the index of its position in the
// supplied list, starting at base.
func ExplicitOrderPlan(ids []uuid.UUID, base int) []IndexAssignment {
	plan := make([]IndexAssignment, len(ids))
	for i, id := range ids {
		plan[i] = IndexAssignment{ID: id, OrderIndex: base + i}
	}
	return plan
}

// ReindexProjectImages repairs the order_index sequence of a project's
// images. Safe to re-run after a partial failure.
func (c *Client) ReindexProjectImages(ctx context.Context, projectID uuid.UUID) error {
	return c.reindexImages(ctx, projectImageCollection, projectID)
}

// ReindexJourneyImages repairs the order_index sequence of a journey
// entry's images. Safe to re-run after a partial failure.
func (c *Client) ReindexJourneyImages(ctx context.Context, journeyID uuid.UUID) error {
	return c.reindexImages(ctx, journeyImageCollection, journeyID)
}

func (c *Client) reindexImages(ctx context.Context, coll imageCollection, ownerID uuid.UUID) error {
	rows, err := c.db.QueryContext(ctx,
		"SELECT id, order_index, created_at FROM "+coll.table+
			" WHERE "+coll.ownerColumn+" = $1 ORDER BY order_index ASC, created_at ASC",
		ownerID)
	if err != nil {
		return errs.FromDatabase("reindex images", "image", err)
	}
	defer rows.Close()

	var images []ImageRow
	for rows.Next() {
		var img ImageRow
		if err := rows.Scan(&img.ID, &img.OrderIndex, &img.CreatedAt); err != nil {
			return errs.FromDatabase("reindex images", "image", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return errs.FromDatabase("reindex images", "image", err)
	}

	plan := ReindexPlan(images, coll.base)
	_, err = c.applyOrder(ctx, coll, ownerID, plan, "reindex images")
	return err
}

// UpdateProjectImageOrder applies a caller-supplied ordering of a
// project's images and returns how many rows actually moved. Ids owned
// by a different project are skipped and not counted.
func (c *Client) UpdateProjectImageOrder(ctx context.Context, projectID uuid.UUID, imageIDs []uuid.UUID) (int, error) {
	return c.applyOrder(ctx, projectImageCollection, projectID,
		ExplicitOrderPlan(imageIDs, projectImageCollection.base), "update image order")
}

// UpdateJourneyImageOrder applies a caller-supplied ordering of a
// journey entry's images and returns how many rows actually moved. Ids
// owned by a different entry are skipped and not counted.
func (c *Client) UpdateJourneyImageOrder(ctx context.Context, journeyID uuid.UUID, imageIDs []uuid.UUID) (int, error) {
	return c.applyOrder(ctx, journeyImageCollection, journeyID,
		ExplicitOrderPlan(imageIDs, journeyImageCollection.base), "update image order")
}

// applyOrder writes the plan one row at a time, scoped to the owner,
// and returns the number of rows the updates reached. A failure partway
// leaves the sequence partially renumbered; the caller repairs it by
// re-running the full reindex, which is idempotent.
func (c *Client) applyOrder(ctx context.Context, coll imageCollection, ownerID uuid.UUID, plan []IndexAssignment, op string) (int, error) {
	applied := 0
	for i, assignment := range plan {
		result, err := c.db.ExecContext(ctx,
			"UPDATE "+coll.table+" SET order_index = $1, updated_at = NOW() WHERE id = $2 AND "+coll.ownerColumn+" = $3",
			assignment.OrderIndex, assignment.ID, ownerID)
		if err != nil {
			return applied, &errs.PartialFailureError{
				Op:        op,
				Completed: i,
				Total:     len(plan),
				Cause:     err,
			}
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return applied, errs.FromDatabase(op, "image", err)
		}
		applied += int(affected)
	}
	return applied, nil
}

// nextOrderIndex returns the index an appended image should take:
// max(order_index)+1, or the collection base when the owner has no
// images yet.
func (c *Client) nextOrderIndex(ctx context.Context, coll imageCollection, ownerID uuid.UUID) (int, error) {
	var next int
	err := c.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(order_index) + 1, $1) FROM "+coll.table+" WHERE "+coll.ownerColumn+" = $2",
		coll.base, ownerID).Scan(&next)
	if err != nil {
		return 0, errs.FromDatabase("next order index", "image", err)
	}
	return next, nil
}
