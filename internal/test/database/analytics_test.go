package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/database"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(-24*time.Hour), database.PeriodStart("24h", now))
	assert.Equal(t, now.AddDate(0, 0, -7), database.PeriodStart("7d", now))
	assert.Equal(t, now.AddDate(0, 0, -30), database.PeriodStart("30d", now))
	assert.Equal(t, now.AddDate(0, 0, -90), database.PeriodStart("90d", now))
}

func TestPeriodStart_UnknownFallsBackToWeek(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -7), database.PeriodStart("1y", now))
	assert.Equal(t, now.AddDate(0, 0, -7), database.PeriodStart("", now))
}

func TestGetContentUsage(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	client := database.NewClientFromDB(db)

	rows := sqlmock.NewRows([]string{"projects", "journey", "tools"}).AddRow(5, 3, 12)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	usage, err := client.GetContentUsage(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 5, usage.Projects)
	assert.Equal(t, 3, usage.Journey)
	assert.Equal(t, 12, usage.Tools)
	assert.WithinDuration(t, time.Now().UTC(), usage.Timestamp, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}
