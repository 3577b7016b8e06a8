package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, name, start_at, end_at, announce_start_at, announce_end_at, created_at`

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.Name, &e.StartAt, &e.EndAt, &e.AnnounceStartAt, &e.AnnounceEndAt, &e.CreatedAt)
	return e, err
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, name, start_at, end_at, announce_start_at, announce_end_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := exec(ctx, r.pool, stmt,
		event.ID, event.Name, event.StartAt, event.EndAt, event.AnnounceStartAt, event.AnnounceEndAt, event.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	event, err := scanEvent(queryRow(ctx, r.pool,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, eventID))
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) ListEvents(ctx context.Context, offset, limit int) ([]domain.Event, error) {
	rows, err := query(ctx, r.pool,
		`SELECT `+eventColumns+` FROM events ORDER BY start_at DESC, id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *EventRepository) CountEvents(ctx context.Context) (int, error) {
	var total int
	if err := queryRow(ctx, r.pool, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return total, nil
}

func (r *EventRepository) FindActiveEvent(ctx context.Context, now time.Time) (*domain.Event, error) {
	event, err := scanEvent(queryRow(ctx, r.pool,
		`SELECT `+eventColumns+` FROM events WHERE start_at <= $1 AND end_at > $1 ORDER BY start_at LIMIT 1`, now))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find active event: %w", err)
	}
	return &event, nil
}
