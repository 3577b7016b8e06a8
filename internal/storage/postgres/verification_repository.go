package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VerificationRepository struct {
	pool   *pgxpool.Pool
	events *EventRepository
}

func NewVerificationRepository(pool *pgxpool.Pool) *VerificationRepository {
	return &VerificationRepository{pool: pool, events: NewEventRepository(pool)}
}

func (r *VerificationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *VerificationRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.events.GetEvent(ctx, eventID)
}

// ConsumeActiveCodes invalidates every unconsumed, unexpired code for the
// (event, phone) pair so only the newest issued code stays usable.
func (r *VerificationRepository) ConsumeActiveCodes(ctx context.Context, eventID, phone string, now time.Time) error {
	const stmt = `
UPDATE phone_verifications
SET consumed = TRUE
WHERE event_id = $1 AND phone_number = $2 AND NOT consumed AND expires_at > $3`

	if _, err := exec(ctx, r.pool, stmt, eventID, phone, now); err != nil {
		return fmt.Errorf("consume active codes: %w", err)
	}
	return nil
}

func (r *VerificationRepository) CreateVerification(ctx context.Context, v domain.Verification) error {
	const stmt = `
INSERT INTO phone_verifications (id, event_id, phone_number, consumed, attempts, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := exec(ctx, r.pool, stmt,
		v.ID, v.EventID, v.PhoneNumber, v.Consumed, v.Attempts, v.CreatedAt, v.ExpiresAt)
	if err != nil {
		return fmt.Errorf("insert verification: %w", err)
	}
	return nil
}

const verificationColumns = `id, event_id, phone_number, consumed, attempts, created_at, expires_at`

func scanVerification(row pgx.Row) (domain.Verification, error) {
	var v domain.Verification
	err := row.Scan(&v.ID, &v.EventID, &v.PhoneNumber, &v.Consumed, &v.Attempts, &v.CreatedAt, &v.ExpiresAt)
	return v, err
}

// GetVerificationForUpdate locks the row so concurrent verify calls for the
// same code are serialized.
func (r *VerificationRepository) GetVerificationForUpdate(ctx context.Context, id string) (domain.Verification, error) {
	v, err := scanVerification(queryRow(ctx, r.pool,
		`SELECT `+verificationColumns+` FROM phone_verifications WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.Verification{}, domain.ErrVerificationNotFound
		}
		return domain.Verification{}, fmt.Errorf("get verification: %w", err)
	}
	return v, nil
}

func (r *VerificationRepository) GetVerification(ctx context.Context, id string) (domain.Verification, error) {
	v, err := scanVerification(queryRow(ctx, r.pool,
		`SELECT `+verificationColumns+` FROM phone_verifications WHERE id = $1`, id))
	if err != nil {
		if isInvalidUUID(err) || err == pgx.ErrNoRows {
			return domain.Verification{}, domain.ErrVerificationNotFound
		}
		return domain.Verification{}, fmt.Errorf("get verification: %w", err)
	}
	return v, nil
}

func (r *VerificationRepository) IncrementAttempts(ctx context.Context, id string) error {
	if _, err := exec(ctx, r.pool,
		`UPDATE phone_verifications SET attempts = attempts + 1 WHERE id = $1`, id); err != nil {
		return fmt.Errorf("increment attempts: %w", err)
	}
	return nil
}

// MarkConsumed flips consumed only if it is still false, reporting whether
// this call performed the transition.
func (r *VerificationRepository) MarkConsumed(ctx context.Context, id string) (bool, error) {
	tag, err := exec(ctx, r.pool,
		`UPDATE phone_verifications SET consumed = TRUE WHERE id = $1 AND NOT consumed`, id)
	if err != nil {
		return false, fmt.Errorf("mark consumed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
