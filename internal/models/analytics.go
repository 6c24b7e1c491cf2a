package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ConversationSession groups chat messages from one visitor session.
type ConversationSession struct {
	ID          uuid.UUID `json:"id"`
	Title       *string   `json:"title,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
}

// ChatMessage is one message in a conversation session.
type ChatMessage struct {
	ID             uuid.UUID       `json:"id"`
	SessionID      uuid.UUID       `json:"session_id"`
	MessageType    string          `json:"message_type"`
	Content        string          `json:"content"`
	SequenceNumber int             `json:"sequence_number"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Message types stored in chat_messages.message_type.
const (
	MessageTypeUser      = "user"
	MessageTypeAssistant = "assistant"
)

// ContentUsage reports how many rows each content type holds, for the
// admin dashboard overview.
type ContentUsage struct {
	Projects  int       `json:"projects"`
	Journey   int       `json:"journey"`
	Tools     int       `json:"tools"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatAnalytics is the aggregated view returned by the analytics
// endpoint for one reporting period.
type ChatAnalytics struct {
	Period            string                `json:"period"`
	TotalMessages     int                   `json:"total_messages"`
	UserMessages      int                   `json:"user_messages"`
	AssistantMessages int                   `json:"assistant_messages"`
	Sessions          []ConversationSession `json:"sessions"`
	RecentMessages    []ChatMessage         `json:"recent_messages"`
}
