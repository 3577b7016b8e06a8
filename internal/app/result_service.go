package app

import (
	"context"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/Mwoo0383/lotto-system/internal/domain"
)

type ResultRepository interface {
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	GetParticipation(ctx context.Context, eventID, phone string) (*domain.Participation, error)
	GetSlot(ctx context.Context, slotID string) (domain.PoolSlot, error)
	// MarkFirstChecked sets first_checked_at only when it is still null and
	// reports whether this call was the one that set it.
	MarkFirstChecked(ctx context.Context, eventID, phone string, at time.Time) (bool, error)
}

type ResultService struct {
	repo  ResultRepository
	clock clock.Clock
}

func NewResultService(repo ResultRepository, clk clock.Clock) *ResultService {
	return &ResultService{repo: repo, clock: clk}
}

type CheckResultInput struct {
	EventID     string
	PhoneNumber string
}

type CheckResultOutput struct {
	FirstCheck   bool
	Won          bool
	ResultLabel  string
	PhoneLast4   string
	LottoNumbers []int
}

const (
	labelWon      = "Winner"
	labelLost     = "Better luck next time"
	labelRevealed = "Result already revealed"
)

// CheckResult reveals a participant's outcome during the announcement window.
// The first call returns the full detail and permanently freezes the
// "checked" flag; every later call returns the reduced view. The won flag is
// identical on every path.
func (s *ResultService) CheckResult(ctx context.Context, in CheckResultInput) (CheckResultOutput, error) {
	if in.EventID == "" {
		return CheckResultOutput{}, domain.ErrInvalidID
	}
	phone, err := domain.NormalizePhone(in.PhoneNumber)
	if err != nil {
		return CheckResultOutput{}, err
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return CheckResultOutput{}, err
	}
	now := s.clock.Now()
	if phase := event.PhaseAt(now); phase != domain.PhaseAnnouncing && phase != domain.PhaseEnded {
		return CheckResultOutput{}, domain.ErrResultsNotOpen
	}

	participation, err := s.repo.GetParticipation(ctx, event.ID, phone)
	if err != nil {
		return CheckResultOutput{}, err
	}
	if participation == nil {
		return CheckResultOutput{}, domain.ErrNotParticipated
	}

	out := CheckResultOutput{
		Won:        participation.Won,
		PhoneLast4: domain.PhoneLast4(phone),
	}
	if participation.FirstCheckedAt != nil {
		out.ResultLabel = labelRevealed
		return out, nil
	}

	// Read the slot before committing the first-check transition: a failed
	// read must leave the reveal available for a retry.
	slot, err := s.repo.GetSlot(ctx, participation.SlotID)
	if err != nil {
		return CheckResultOutput{}, err
	}

	first, err := s.repo.MarkFirstChecked(ctx, event.ID, phone, now)
	if err != nil {
		return CheckResultOutput{}, err
	}
	if !first {
		// A concurrent call won the race while we were reading.
		out.ResultLabel = labelRevealed
		return out, nil
	}

	out.FirstCheck = true
	if participation.Won {
		out.ResultLabel = labelWon
	} else {
		out.ResultLabel = labelLost
	}
	out.LottoNumbers = slot.Numbers
	return out, nil
}
