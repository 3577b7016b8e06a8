package domain

import "time"

// Participation is the durable binding of one phone number to one claimed
// slot. It is created only by a successful draw, never deleted or reassigned.
// Won copies the slot's winning flag at claim time and never changes.
type Participation struct {
	EventID        string
	PhoneNumber    string
	SlotID         string
	Won            bool
	FirstCheckedAt *time.Time
	CreatedAt      time.Time
}

// PhoneLast4 returns the display suffix of a stored phone number.
func PhoneLast4(phone string) string {
	if len(phone) < 4 {
		return phone
	}
	return phone[len(phone)-4:]
}
