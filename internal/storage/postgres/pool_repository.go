package postgres

import (
	"context"
	"fmt"

	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolRepository struct {
	pool   *pgxpool.Pool
	events *EventRepository
}

func NewPoolRepository(pool *pgxpool.Pool) *PoolRepository {
	return &PoolRepository{pool: pool, events: NewEventRepository(pool)}
}

func (r *PoolRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *PoolRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.events.GetEvent(ctx, eventID)
}

func (r *PoolRepository) CountSlots(ctx context.Context, eventID string) (int, error) {
	var total int
	err := queryRow(ctx, r.pool,
		`SELECT COUNT(*) FROM pool_slots WHERE event_id = $1`, eventID).Scan(&total)
	if err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrEventNotFound
		}
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return total, nil
}

// InsertSlots bulk-loads a generated pool with COPY. Callers run it inside
// WithTx so the pool lands all-or-nothing; the (event_id, ordinal) unique
// constraint turns a concurrent double-generate into ErrPoolAlreadyExists.
func (r *PoolRepository) InsertSlots(ctx context.Context, slots []domain.PoolSlot) error {
	cols := []string{"id", "event_id", "ordinal", "numbers", "winning"}
	_, err := copyFrom(ctx, r.pool, pgx.Identifier{"pool_slots"}, cols,
		pgx.CopyFromSlice(len(slots), func(i int) ([]any, error) {
			s := slots[i]
			return []any{s.ID, s.EventID, s.Ordinal, s.Numbers, s.Winning}, nil
		}))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPoolAlreadyExists
		}
		return fmt.Errorf("copy pool slots: %w", err)
	}
	return nil
}
