package domain

import "time"

// Verification tracks one one-time-code challenge for an (event, phone) pair.
// The code string itself is kept in the CodeStore keyed by the verification
// ID; this row carries the lifecycle state.
type Verification struct {
	ID          string
	EventID     string
	PhoneNumber string
	Consumed    bool
	Attempts    int
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// ExpiredAt reports whether the code is no longer usable at now.
func (v Verification) ExpiredAt(now time.Time) bool {
	return !now.Before(v.ExpiresAt)
}
