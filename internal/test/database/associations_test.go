package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/database"
)

func TestDedupeIDs_FirstOccurrenceWins(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	out := database.DedupeIDs([]uuid.UUID{a, b, a, b, a})

	assert.Equal(t, []uuid.UUID{a, b}, out)
}

func TestDedupeIDs_NoDuplicates(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	out := database.DedupeIDs([]uuid.UUID{a, b, c})

	assert.Equal(t, []uuid.UUID{a, b, c}, out)
}

func TestDedupeIDs_Empty(t *testing.T) {
	assert.Empty(t, database.DedupeIDs(nil))
	assert.Empty(t, database.DedupeIDs([]uuid.UUID{}))
}

func TestReplaceAssociations_DeleteThenInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := database.NewClientFromDB(db)

	parentID := uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM project_tools WHERE project_id = $1")).
		WithArgs(parentID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO project_tools (project_id, tool_id) VALUES ($1, $2)")).
		WithArgs(parentID, a).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO project_tools (project_id, tool_id) VALUES ($1, $2)")).
		WithArgs(parentID, b).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Duplicated ids collapse to one insert each.
	err = client.ReplaceAssociations(context.Background(), parentID, database.ProjectTools, []uuid.UUID{a, b, a})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAssociations_EmptySetClears(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := database.NewClientFromDB(db)

	parentID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM project_tags WHERE project_id = $1")).
		WithArgs(parentID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err = client.ReplaceAssociations(context.Background(), parentID, database.ProjectTags, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAssociations_InsertFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := database.NewClientFromDB(db)

	parentID := uuid.New()
	a := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM project_tools WHERE project_id = $1")).
		WithArgs(parentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO project_tools (project_id, tool_id) VALUES ($1, $2)")).
		WithArgs(parentID, a).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = client.ReplaceAssociations(context.Background(), parentID, database.ProjectTools, []uuid.UUID{a})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceAssociations_SameSetTwiceRepeatsCleanly(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := database.NewClientFromDB(db)

	parentID := uuid.New()
	a := uuid.New()

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM project_tools WHERE project_id = $1")).
			WithArgs(parentID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO project_tools (project_id, tool_id) VALUES ($1, $2)")).
			WithArgs(parentID, a).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	set := []uuid.UUID{a}
	assert.NoError(t, client.ReplaceAssociations(context.Background(), parentID, database.ProjectTools, set))
	assert.NoError(t, client.ReplaceAssociations(context.Background(), parentID, database.ProjectTools, set))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociationTables(t *testing.T) {
	assert.Equal(t, "project_tools", database.ProjectTools.Table)
	assert.Equal(t, "tool_id", database.ProjectTools.ChildColumn)
	assert.Equal(t, "project_tags", database.ProjectTags.Table)
	assert.Equal(t, "tag_id", database.ProjectTags.ChildColumn)
	assert.Equal(t, "project_id", database.ProjectTools.ParentColumn)
	assert.Equal(t, "project_id", database.ProjectTags.ParentColumn)
}
