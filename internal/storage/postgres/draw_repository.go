package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DrawRepository struct {
	pool          *pgxpool.Pool
	events        *EventRepository
	verifications *VerificationRepository
	slots         *PoolRepository
}

func NewDrawRepository(pool *pgxpool.Pool) *DrawRepository {
	return &DrawRepository{
		pool:          pool,
		events:        NewEventRepository(pool),
		verifications: NewVerificationRepository(pool),
		slots:         NewPoolRepository(pool),
	}
}

func (r *DrawRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *DrawRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.events.GetEvent(ctx, eventID)
}

// GetEventForUpdate takes the per-event claim lock. Every slot claim for the
// event goes through this row, which is what makes concurrent Participate
// calls linearize; other events stay independent.
func (r *DrawRepository) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	event, err := scanEvent(queryRow(ctx, r.pool,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 FOR UPDATE`, eventID))
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("lock event: %w", err)
	}
	return event, nil
}

func (r *DrawRepository) GetVerification(ctx context.Context, id string) (domain.Verification, error) {
	return r.verifications.GetVerification(ctx, id)
}

func (r *DrawRepository) CountSlots(ctx context.Context, eventID string) (int, error) {
	return r.slots.CountSlots(ctx, eventID)
}

const slotColumns = `id, event_id, ordinal, numbers, winning, claimed_by_phone, claimed_at`

func scanSlot(row pgx.Row) (domain.PoolSlot, error) {
	var s domain.PoolSlot
	err := row.Scan(&s.ID, &s.EventID, &s.Ordinal, &s.Numbers, &s.Winning, &s.ClaimedByPhone, &s.ClaimedAt)
	return s, err
}

func (r *DrawRepository) GetSlot(ctx context.Context, slotID string) (domain.PoolSlot, error) {
	slot, err := scanSlot(queryRow(ctx, r.pool,
		`SELECT `+slotColumns+` FROM pool_slots WHERE id = $1`, slotID))
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.PoolSlot{}, domain.ErrPoolNotGenerated
		}
		return domain.PoolSlot{}, fmt.Errorf("get slot: %w", err)
	}
	return slot, nil
}

// NextUnclaimedSlot returns the lowest-ordinal unclaimed slot, or nil when
// the pool is exhausted (or absent). Callers hold the event claim lock.
func (r *DrawRepository) NextUnclaimedSlot(ctx context.Context, eventID string) (*domain.PoolSlot, error) {
	slot, err := scanSlot(queryRow(ctx, r.pool, `
SELECT `+slotColumns+`
FROM pool_slots
WHERE event_id = $1 AND claimed_by_phone IS NULL
ORDER BY ordinal
LIMIT 1`, eventID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isInvalidUUID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("next unclaimed slot: %w", err)
	}
	return &slot, nil
}

func (r *DrawRepository) ClaimSlot(ctx context.Context, slotID, phone string, at time.Time) error {
	tag, err := exec(ctx, r.pool, `
UPDATE pool_slots
SET claimed_by_phone = $2, claimed_at = $3
WHERE id = $1 AND claimed_by_phone IS NULL`, slotID, phone, at)
	if err != nil {
		return fmt.Errorf("claim slot: %w", err)
	}
	if tag.RowsAffected() != 1 {
		// Unreachable while claims hold the event lock; kept as a guard
		// against a claim path that bypasses it.
		return domain.ErrPoolExhausted
	}
	return nil
}

func (r *DrawRepository) GetParticipation(ctx context.Context, eventID, phone string) (*domain.Participation, error) {
	var p domain.Participation
	err := queryRow(ctx, r.pool, `
SELECT event_id, phone_number, slot_id, won, first_checked_at, created_at
FROM participations
WHERE event_id = $1 AND phone_number = $2`, eventID, phone).
		Scan(&p.EventID, &p.PhoneNumber, &p.SlotID, &p.Won, &p.FirstCheckedAt, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		if isInvalidUUID(err) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get participation: %w", err)
	}
	return &p, nil
}

func (r *DrawRepository) CreateParticipation(ctx context.Context, p domain.Participation) error {
	const stmt = `
INSERT INTO participations (event_id, phone_number, slot_id, won, created_at)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := exec(ctx, r.pool, stmt, p.EventID, p.PhoneNumber, p.SlotID, p.Won, p.CreatedAt); err != nil {
		return fmt.Errorf("insert participation: %w", err)
	}
	return nil
}
