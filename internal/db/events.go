package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TrackingEvent is one recorded open/click/unsubscribe event.
type TrackingEvent struct {
	ID         uuid.UUID `json:"id"`
	MessageID  string    `json:"message_id"`
	Event      string    `json:"event"`
	UserAgent  string    `json:"user_agent,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RecordTrackingEvent stores one tracking event.
func (db *DB) RecordTrackingEvent(ctx context.Context, messageID, event, userAgent string) error {
	if db == nil {
		return nil
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO tracking_events (message_id, event, user_agent)
		 VALUES ($1, $2, $3)`,
		messageID, event, userAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to record tracking event: %w", err)
	}
	return nil
}

// ListTrackingEvents retrieves events for one message, oldest first.
func (db *DB) ListTrackingEvents(ctx context.Context, messageID string) ([]TrackingEvent, error) {
	if db == nil {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, message_id, event, user_agent, occurred_at
		 FROM tracking_events WHERE message_id = $1
		 ORDER BY occurred_at ASC`,
		messageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking events: %w", err)
	}
	defer rows.Close()

	var events []TrackingEvent
	for rows.Next() {
		var e TrackingEvent
		if err := rows.Scan(&e.ID, &e.MessageID, &e.Event, &e.UserAgent, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan tracking event: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}
