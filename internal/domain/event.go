package domain

import "time"

// Event is one lottery campaign: a participation window followed, after a
// review gap, by an announcement window.
type Event struct {
	ID              string
	Name            string
	StartAt         time.Time
	EndAt           time.Time
	AnnounceStartAt time.Time
	AnnounceEndAt   time.Time
	CreatedAt       time.Time
}

// ValidateWindows enforces the strict ordering
// startAt < endAt < announceStartAt < announceEndAt.
func (e Event) ValidateWindows() error {
	if !e.StartAt.Before(e.EndAt) {
		return ErrInvalidEventWindow
	}
	if !e.EndAt.Before(e.AnnounceStartAt) {
		return ErrInvalidEventWindow
	}
	if !e.AnnounceStartAt.Before(e.AnnounceEndAt) {
		return ErrInvalidEventWindow
	}
	return nil
}
