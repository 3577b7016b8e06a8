package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CodeStore keeps verification code strings in Postgres. It is the durable
// default; a Redis-backed store can be swapped in (see storage/redisstore).
// Expiry is evaluated against the injected clock so code rows and
// verification rows age on the same time source.
type CodeStore struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewCodeStore(pool *pgxpool.Pool, clk clock.Clock) *CodeStore {
	return &CodeStore{pool: pool, clock: clk}
}

func (s *CodeStore) Save(ctx context.Context, key, code string, ttl time.Duration) error {
	const stmt = `
INSERT INTO verification_codes (key, code, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at`

	if _, err := exec(ctx, s.pool, stmt, key, code, s.clock.Now().UTC().Add(ttl)); err != nil {
		return fmt.Errorf("save code: %w", err)
	}
	return nil
}

func (s *CodeStore) Get(ctx context.Context, key string) (string, bool, error) {
	var code string
	err := queryRow(ctx, s.pool,
		`SELECT code FROM verification_codes WHERE key = $1 AND expires_at > $2`, key, s.clock.Now().UTC()).Scan(&code)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get code: %w", err)
	}
	return code, true, nil
}

func (s *CodeStore) Delete(ctx context.Context, key string) error {
	if _, err := exec(ctx, s.pool, `DELETE FROM verification_codes WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete code: %w", err)
	}
	return nil
}
