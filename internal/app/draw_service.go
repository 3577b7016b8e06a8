package app

import (
	"context"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/Mwoo0383/lotto-system/internal/domain"
)

type DrawRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	// GetEventForUpdate locks the event row, serializing claims per event.
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	GetVerification(ctx context.Context, id string) (domain.Verification, error)
	GetParticipation(ctx context.Context, eventID, phone string) (*domain.Participation, error)
	GetSlot(ctx context.Context, slotID string) (domain.PoolSlot, error)
	NextUnclaimedSlot(ctx context.Context, eventID string) (*domain.PoolSlot, error)
	CountSlots(ctx context.Context, eventID string) (int, error)
	ClaimSlot(ctx context.Context, slotID, phone string, at time.Time) error
	CreateParticipation(ctx context.Context, p domain.Participation) error
}

type DrawService struct {
	repo  DrawRepository
	clock clock.Clock
}

func NewDrawService(repo DrawRepository, clk clock.Clock) *DrawService {
	return &DrawService{repo: repo, clock: clk}
}

type ParticipateInput struct {
	EventID        string
	PhoneNumber    string
	VerificationID string
}

type ParticipateResult struct {
	PhoneLast4   string
	LottoNumbers []int
	Won          bool
	Message      string
}

const (
	messageIssued   = "Your lottery numbers have been issued!"
	messageReissued = "You already have lottery numbers for this event."
)

// Participate claims exactly one unclaimed slot for a verified phone number
// and binds it forever. Re-entry for a pair that already holds a binding
// returns that binding unchanged, so retries never consume a second slot.
// Claims for the same event are serialized on the event row; distinct events
// never contend.
func (s *DrawService) Participate(ctx context.Context, in ParticipateInput) (ParticipateResult, error) {
	if in.EventID == "" || in.VerificationID == "" {
		return ParticipateResult{}, domain.ErrInvalidID
	}
	phone, err := domain.NormalizePhone(in.PhoneNumber)
	if err != nil {
		return ParticipateResult{}, err
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return ParticipateResult{}, err
	}
	now := s.clock.Now()
	if event.PhaseAt(now) != domain.PhaseActive {
		return ParticipateResult{}, domain.ErrEventNotActive
	}

	verification, err := s.repo.GetVerification(ctx, in.VerificationID)
	if err != nil {
		if err == domain.ErrVerificationNotFound {
			return ParticipateResult{}, domain.ErrNotVerified
		}
		return ParticipateResult{}, err
	}
	if !verification.Consumed || verification.EventID != event.ID || verification.PhoneNumber != phone {
		return ParticipateResult{}, domain.ErrNotVerified
	}

	var result ParticipateResult
	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if existing, err := s.repo.GetParticipation(txCtx, event.ID, phone); err != nil {
			return err
		} else if existing != nil {
			return s.existingResult(txCtx, *existing, &result)
		}

		// Serialize concurrent claims for this event before touching slots.
		if _, err := s.repo.GetEventForUpdate(txCtx, event.ID); err != nil {
			return err
		}
		// Re-check under the lock: a concurrent call for the same pair may
		// have won the race while we waited.
		if existing, err := s.repo.GetParticipation(txCtx, event.ID, phone); err != nil {
			return err
		} else if existing != nil {
			return s.existingResult(txCtx, *existing, &result)
		}

		slot, err := s.repo.NextUnclaimedSlot(txCtx, event.ID)
		if err != nil {
			return err
		}
		if slot == nil {
			total, err := s.repo.CountSlots(txCtx, event.ID)
			if err != nil {
				return err
			}
			if total == 0 {
				return domain.ErrPoolNotGenerated
			}
			return domain.ErrPoolExhausted
		}

		if err := s.repo.ClaimSlot(txCtx, slot.ID, phone, now); err != nil {
			return err
		}
		if err := s.repo.CreateParticipation(txCtx, domain.Participation{
			EventID:     event.ID,
			PhoneNumber: phone,
			SlotID:      slot.ID,
			Won:         slot.Winning,
			CreatedAt:   now,
		}); err != nil {
			return err
		}

		result = ParticipateResult{
			PhoneLast4:   domain.PhoneLast4(phone),
			LottoNumbers: slot.Numbers,
			Won:          slot.Winning,
			Message:      messageIssued,
		}
		return nil
	})
	if err != nil {
		return ParticipateResult{}, err
	}
	return result, nil
}

func (s *DrawService) existingResult(ctx context.Context, p domain.Participation, out *ParticipateResult) error {
	slot, err := s.repo.GetSlot(ctx, p.SlotID)
	if err != nil {
		return err
	}
	*out = ParticipateResult{
		PhoneLast4:   domain.PhoneLast4(p.PhoneNumber),
		LottoNumbers: slot.Numbers,
		Won:          p.Won,
		Message:      messageReissued,
	}
	return nil
}
