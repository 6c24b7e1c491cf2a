package database_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/database"
)

func row(id uuid.UUID, index int, created time.Time) database.ImageRow {
	return database.ImageRow{ID: id, OrderIndex: index, CreatedAt: created}
}

func TestReindexPlan_AlreadyDense(t *testing.T) {
	now := time.Now()
	rows := []database.ImageRow{
		row(uuid.New(), 0, now),
		row(uuid.New(), 1, now.Add(time.Second)),
		row(uuid.New(), 2, now.Add(2*time.Second)),
	}

	plan := database.ReindexPlan(rows, 0)

	assert.Empty(t, plan)
}

func TestReindexPlan_ClosesGapAfterDeletion(t *testing.T) {
	// Indices 1,2,3 with the middle image gone: [1,3] should become [1,2].
	now := time.Now()
	first := uuid.New()
	last := uuid.New()
	rows := []database.ImageRow{
		row(first, 1, now),
		row(last, 3, now.Add(time.Second)),
	}

	plan := database.ReindexPlan(rows, 1)

	assert.Len(t, plan, 1)
	assert.Equal(t, last, plan[0].ID)
	assert.Equal(t, 2, plan[0].OrderIndex)
}

func TestReindexPlan_RespectsBase(t *testing.T) {
	now := time.Now()
	rows := []database.ImageRow{
		row(uuid.New(), 5, now),
		row(uuid.New(), 9, now.Add(time.Second)),
	}

	zeroBased := database.ReindexPlan(rows, 0)
	oneBased := database.ReindexPlan(rows, 1)

	assert.Len(t, zeroBased, 2)
	assert.Equal(t, 0, zeroBased[0].OrderIndex)
	assert.Equal(t, 1, zeroBased[1].OrderIndex)

	assert.Len(t, oneBased, 2)
	assert.Equal(t, 1, oneBased[0].OrderIndex)
	assert.Equal(t, 2, oneBased[1].OrderIndex)
}

func TestReindexPlan_TiesBreakOnCreatedAt(t *testing.T) {
	now := time.Now()
	older := uuid.New()
	newer := uuid.New()
	rows := []database.ImageRow{
		row(newer, 0, now.Add(time.Minute)),
		row(older, 0, now),
	}

	plan := database.ReindexPlan(rows, 0)

	// The older image keeps index 0, the newer one moves to 1.
	assert.Len(t, plan, 1)
	assert.Equal(t, newer, plan[0].ID)
	assert.Equal(t, 1, plan[0].OrderIndex)
}

func TestReindexPlan_Idempotent(t *testing.T) {
	now := time.Now()
	rows := []database.ImageRow{
		row(uuid.New(), 7, now),
		row(uuid.New(), 2, now.Add(time.Second)),
		row(uuid.New(), 4, now.Add(2*time.Second)),
	}

	plan := database.ReindexPlan(rows, 0)

	// Apply the plan in memory, then re-plan: no further work.
	byID := map[uuid.UUID]int{}
	for _, r := range rows {
		byID[r.ID] = r.OrderIndex
	}
	for _, a := range plan {
		byID[a.ID] = a.OrderIndex
	}
	applied := make([]database.ImageRow, len(rows))
	for i, r := range rows {
		applied[i] = row(r.ID, byID[r.ID], r.CreatedAt)
	}

	assert.Empty(t, database.ReindexPlan(applied, 0))
}

func TestReindexPlan_Empty(t *testing.T) {
	assert.Empty(t, database.ReindexPlan(nil, 0))
}

func TestExplicitOrderPlan_AssignsByPosition(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// Order [c, a, b] starting at 1: c=1, a=2, b=3.
	plan := database.ExplicitOrderPlan([]uuid.UUID{c, a, b}, 1)

	assert.Len(t, plan, 3)
	assert.Equal(t, database.IndexAssignment{ID: c, OrderIndex: 1}, plan[0])
	assert.Equal(t, database.IndexAssignment{ID: a, OrderIndex: 2}, plan[1])
	assert.Equal(t, database.IndexAssignment{ID: b, OrderIndex: 3}, plan[2])
}

func TestExplicitOrderPlan_ZeroBase(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	plan := database.ExplicitOrderPlan([]uuid.UUID{a, b}, 0)

	assert.Equal(t, 0, plan[0].OrderIndex)
	assert.Equal(t, 1, plan[1].OrderIndex)
}

func TestUpdateProjectImageOrder_SkippedIDsNotCounted(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := database.NewClientFromDB(db)

	projectID := uuid.New()
	mine := uuid.New()
	foreign := uuid.New() // belongs to another project, its update reaches 0 rows
	mineToo := uuid.New()

	query := regexp.QuoteMeta("UPDATE project_images SET order_index = $1, updated_at = NOW() WHERE id = $2 AND project_id = $3")
	mock.ExpectExec(query).WithArgs(0, mine, projectID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(1, foreign, projectID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(query).WithArgs(2, mineToo, projectID).WillReturnResult(sqlmock.NewResult(0, 1))

	reordered, err := client.UpdateProjectImageOrder(context.Background(), projectID, []uuid.UUID{mine, foreign, mineToo})

	assert.NoError(t, err)
	assert.Equal(t, 2, reordered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateJourneyImageOrder_OneBasedIndices(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := database.NewClientFromDB(db)

	journeyID := uuid.New()
	a, b := uuid.New(), uuid.New()

	query := regexp.QuoteMeta("UPDATE journey_images SET order_index = $1, updated_at = NOW() WHERE id = $2 AND journey_id = $3")
	mock.ExpectExec(query).WithArgs(1, a, journeyID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(query).WithArgs(2, b, journeyID).WillReturnResult(sqlmock.NewResult(0, 1))

	reordered, err := client.UpdateJourneyImageOrder(context.Background(), journeyID, []uuid.UUID{a, b})

	assert.NoError(t, err)
	assert.Equal(t, 2, reordered)
	assert.NoError(t, mock.ExpectationsWereMet())
}
