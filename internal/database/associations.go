package database

import (
	"context"

	"github.com/google/uuid"

	"portfolio-backend/internal/errs"
)

// AssociationTable identifies one of the many-to-many join tables
// hanging off projects.
type AssociationTable struct {
	Table        string
	ParentColumn string
	ChildColumn  string
}

var (
	ProjectTools = AssociationTable{Table: "project_tools", ParentColumn: "project_id", ChildColumn: "tool_id"}
	ProjectTags  = AssociationTable{Table: "project_tags", ParentColumn: "project_id", ChildColumn: "tag_id"}
)

// DedupeIDs returns ids with duplicates removed, first occurrence wins.
func DedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ReplaceAssociations swaps the parent's entire relation set for
// childIDs: full-replace, not a patch. The delete and inserts run in
// one transaction, so a failed insert rolls back instead of leaving the
// parent with zero associations. An empty childIDs list is valid and
// clears the set. Calling twice with the same set is a no-op the second
// time.
func (c *Client) ReplaceAssociations(ctx context.Context, parentID uuid.UUID, at AssociationTable, childIDs []uuid.UUID) error {
	childIDs = DedupeIDs(childIDs)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errs.FromDatabase("replace associations", at.Table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM "+at.Table+" WHERE "+at.ParentColumn+" = $1", parentID); err != nil {
		return errs.FromDatabase("replace associations", at.Table, err)
	}

	for _, childID := range childIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO "+at.Table+" ("+at.ParentColumn+", "+at.ChildColumn+") VALUES ($1, $2)",
			parentID, childID)
		if err != nil {
			return errs.FromDatabase("replace associations", at.Table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return &errs.PartialFailureError{
			Op:        "replace associations",
			Completed: len(childIDs),
			Total:     len(childIDs) + 1,
			Cause:     err,
		}
	}
	return nil
}
