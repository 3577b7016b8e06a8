package domain

import "time"

// Phase is the lifecycle stage of an event at a given instant. It is always
// derived from the event's timestamps, never stored.
type Phase string

const (
	PhaseReady      Phase = "READY"
	PhaseActive     Phase = "ACTIVE"
	PhaseInReview   Phase = "IN_REVIEW"
	PhaseAnnouncing Phase = "ANNOUNCING"
	PhaseEnded      Phase = "ENDED"
)

// PhaseAt maps now to exactly one phase. All windows are half-open, so the
// phases are contiguous for any event with validly ordered timestamps.
func (e Event) PhaseAt(now time.Time) Phase {
	switch {
	case !now.Before(e.AnnounceEndAt):
		return PhaseEnded
	case !now.Before(e.AnnounceStartAt):
		return PhaseAnnouncing
	case !now.Before(e.EndAt):
		return PhaseInReview
	case !now.Before(e.StartAt):
		return PhaseActive
	default:
		return PhaseReady
	}
}
