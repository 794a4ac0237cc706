package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// EventType is the kind of contact event recorded by the detector.
type EventType string

const (
	// EventTypeAlert is a contact that was held past the alert delay.
	EventTypeAlert EventType = "alert"
	// EventTypeMindfulStop is a contact released before the alert fired.
	EventTypeMindfulStop EventType = "mindful_stop"
)

// Event represents a contact event stored in the database.
type Event struct {
	ID             string
	SessionID      string
	Type           EventType
	Region         string
	TimestampMs    int64
	HeldDurationMs int64
	CreatedAt      time.Time
}

// EventFilter narrows event listing. Zero values mean no constraint.
type EventFilter struct {
	SessionID string
	Type      EventType
	Region    string
	Limit     int
}

// DayStats aggregates event counts for a single day.
type DayStats struct {
	Day          string
	Alerts       int
	MindfulStops int
}

// EventRepository provides persistence operations for contact events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert records a new contact event.
func (r *EventRepository) Insert(e *Event) error {
	e.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(
		`INSERT INTO events (id, session_id, type, region, timestamp_ms, held_duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, string(e.Type), e.Region, e.TimestampMs, e.HeldDurationMs, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	e := &Event{}
	var eventType string

	err := r.db.QueryRow(
		`SELECT id, session_id, type, region, timestamp_ms, held_duration_ms, created_at
		 FROM events WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.SessionID, &eventType, &e.Region, &e.TimestampMs, &e.HeldDurationMs, &e.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e.Type = EventType(eventType)
	return e, nil
}

// List retrieves events matching the filter, newest first.
func (r *EventRepository) List(f EventFilter) ([]*Event, error) {
	query := `SELECT id, session_id, type, region, timestamp_ms, held_duration_ms, created_at
	 FROM events WHERE 1=1`
	var args []any

	if f.SessionID != "" {
		query += ` AND session_id = ?`
		args = append(args, f.SessionID)
	}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if f.Region != "" {
		query += ` AND region = ?`
		args = append(args, f.Region)
	}

	query += ` ORDER BY created_at DESC, timestamp_ms DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var eventType string

		err := rows.Scan(&e.ID, &e.SessionID, &eventType, &e.Region, &e.TimestampMs, &e.HeldDurationMs, &e.CreatedAt)
		if err != nil {
			return nil, err
		}

		e.Type = EventType(eventType)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// DailyStats aggregates alert and mindful stop counts per day for the
// most recent days.
func (r *EventRepository) DailyStats(days int) ([]*DayStats, error) {
	rows, err := r.db.Query(
		`SELECT date(created_at) AS day,
			SUM(CASE WHEN type = 'alert' THEN 1 ELSE 0 END),
			SUM(CASE WHEN type = 'mindful_stop' THEN 1 ELSE 0 END)
		 FROM events
		 WHERE created_at >= datetime('now', ?)
		 GROUP BY day
		 ORDER BY day DESC`,
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*DayStats
	for rows.Next() {
		d := &DayStats{}
		if err := rows.Scan(&d.Day, &d.Alerts, &d.MindfulStops); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
