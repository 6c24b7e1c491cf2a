package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"portfolio-backend/internal/errs"
	"portfolio-backend/internal/models"
)

// PeriodStart resolves a reporting period token to the window start.
// Unknown tokens fall back to seven days, matching the dashboard's
// default.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case "24h":
		return now.Add(-24 * time.Hour)
	case "7d":
		return now.AddDate(0, 0, -7)
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// GetContentUsage counts the projects, journey entries and tools
// currently stored.
func (c *Client) GetContentUsage(ctx context.Context) (*models.ContentUsage, error) {
	usage := &models.ContentUsage{Timestamp: time.Now().UTC()}
	err := c.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM journey),
			(SELECT COUNT(*) FROM tools)
	`).Scan(&usage.Projects, &usage.Journey, &usage.Tools)
	if err != nil {
		return nil, errs.FromDatabase("content usage", "content", err)
	}
	return usage, nil
}

// GetChatAnalytics aggregates chat activity since the start of the
// period: session list, per-role message counts and the most recent
// messages. Read-only.
func (c *Client) GetChatAnalytics(ctx context.Context, period string, limit int) (*models.ChatAnalytics, error) {
	if limit <= 0 {
		limit = 100
	}
	since := PeriodStart(period, time.Now())

	analytics := &models.ChatAnalytics{
		Period:         period,
		Sessions:       []models.ConversationSession{},
		RecentMessages: []models.ChatMessage{},
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, created_at, last_updated
		FROM conversation_sessions
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, errs.FromDatabase("list sessions", "session", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.ConversationSession
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt, &s.LastUpdated); err != nil {
			return nil, errs.FromDatabase("scan session", "session", err)
		}
		analytics.Sessions = append(analytics.Sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.FromDatabase("list sessions", "session", err)
	}

	err = c.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE message_type = $2),
			COUNT(*) FILTER (WHERE message_type = $3)
		FROM chat_messages
		WHERE created_at >= $1
	`, since, models.MessageTypeUser, models.MessageTypeAssistant).Scan(
		&analytics.TotalMessages, &analytics.UserMessages, &analytics.AssistantMessages)
	if err != nil {
		return nil, errs.FromDatabase("count messages", "message", err)
	}

	msgRows, err := c.db.QueryContext(ctx, `
		SELECT id, session_id, message_type, content, sequence_number, metadata, created_at
		FROM chat_messages
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT 25
	`, since)
	if err != nil {
		return nil, errs.FromDatabase("list recent messages", "message", err)
	}
	defer msgRows.Close()

	for msgRows.Next() {
		var m models.ChatMessage
		err := msgRows.Scan(&m.ID, &m.SessionID, &m.MessageType, &m.Content,
			&m.SequenceNumber, &m.Metadata, &m.CreatedAt)
		if err != nil {
			return nil, errs.FromDatabase("scan message", "message", err)
		}
		analytics.RecentMessages = append(analytics.RecentMessages, m)
	}
	if err := msgRows.Err(); err != nil {
		return nil, errs.FromDatabase("list recent messages", "message", err)
	}

	return analytics, nil
}

// GetSessionMessages returns every message of one session in
// conversation order.
func (c *Client) GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]models.ChatMessage, error) {
	var exists bool
	err := c.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM conversation_sessions WHERE id = $1)", sessionID).Scan(&exists)
	if err != nil {
		return nil, errs.FromDatabase("get session", "session", err)
	}
	if !exists {
		return nil, errs.NotFound("session")
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, session_id, message_type, content, sequence_number, metadata, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY sequence_number ASC
	`, sessionID)
	if err != nil {
		return nil, errs.FromDatabase("list session messages", "message", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		err := rows.Scan(&m.ID, &m.SessionID, &m.MessageType, &m.Content,
			&m.SequenceNumber, &m.Metadata, &m.CreatedAt)
		if err != nil {
			return nil, errs.FromDatabase("scan message", "message", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// ListGeneralInfo returns knowledge-base entries, most recently updated
// first.
func (c *Client) ListGeneralInfo(ctx context.Context) ([]models.GeneralInfo, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, category, title, content, keywords, priority, created_at, updated_at
		FROM general_info
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, errs.FromDatabase("list general info", "general info", err)
	}
	defer rows.Close()

	entries := []models.GeneralInfo{}
	for rows.Next() {
		var e models.GeneralInfo
		err := rows.Scan(&e.ID, &e.Category, &e.Title, &e.Content,
			&e.Keywords, &e.Priority, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, errs.FromDatabase("scan general info", "general info", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertGeneralInfo creates an entry when req.ID is nil and updates the
// existing one otherwise.
func (c *Client) UpsertGeneralInfo(ctx context.Context, req models.GeneralInfoRequest) (*models.GeneralInfo, error) {
	if req.Category == "" {
		return nil, errs.Validation("category", "category is required")
	}
	if req.Title == "" {
		return nil, errs.Validation("title", "title is required")
	}
	if req.Content == "" {
		return nil, errs.Validation("content", "content is required")
	}

	keywords := req.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	var e models.GeneralInfo
	if req.ID == nil {
		err := c.db.QueryRowContext(ctx, `
			INSERT INTO general_info (category, title, content, keywords, priority)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, category, title, content, keywords, priority, created_at, updated_at
		`, req.Category, req.Title, req.Content, pq.Array(keywords), req.Priority,
		).Scan(&e.ID, &e.Category, &e.Title, &e.Content, &e.Keywords, &e.Priority, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, errs.FromDatabase("create general info", "general info", err)
		}
		return &e, nil
	}

	err := c.db.QueryRowContext(ctx, `
		UPDATE general_info
		SET category = $1, title = $2, content = $3, keywords = $4, priority = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, category, title, content, keywords, priority, created_at, updated_at
	`, req.Category, req.Title, req.Content, pq.Array(keywords), req.Priority, *req.ID,
	).Scan(&e.ID, &e.Category, &e.Title, &e.Content, &e.Keywords, &e.Priority, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, errs.FromDatabase("update general info", "general info", err)
	}
	return &e, nil
}
