package domain

import "time"

// PoolSlot is one pre-generated outcome in an event's pool. Ordinal is the
// randomized assignment order (0..N-1), independent of storage identity, so
// claim order cannot be inferred from IDs or numbers. A slot is claimed at
// most once.
type PoolSlot struct {
	ID             string
	EventID        string
	Ordinal        int
	Numbers        []int
	Winning        bool
	ClaimedByPhone *string
	ClaimedAt      *time.Time
}
