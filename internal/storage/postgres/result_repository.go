package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResultRepository struct {
	pool *pgxpool.Pool
	draw *DrawRepository
}

func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool, draw: NewDrawRepository(pool)}
}

func (r *ResultRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.draw.GetEvent(ctx, eventID)
}

func (r *ResultRepository) GetParticipation(ctx context.Context, eventID, phone string) (*domain.Participation, error) {
	return r.draw.GetParticipation(ctx, eventID, phone)
}

func (r *ResultRepository) GetSlot(ctx context.Context, slotID string) (domain.PoolSlot, error) {
	return r.draw.GetSlot(ctx, slotID)
}

// MarkFirstChecked freezes the reveal moment: the conditional update makes
// exactly one concurrent caller the first check.
func (r *ResultRepository) MarkFirstChecked(ctx context.Context, eventID, phone string, at time.Time) (bool, error) {
	tag, err := exec(ctx, r.pool, `
UPDATE participations
SET first_checked_at = $3
WHERE event_id = $1 AND phone_number = $2 AND first_checked_at IS NULL`, eventID, phone, at)
	if err != nil {
		return false, fmt.Errorf("mark first checked: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
