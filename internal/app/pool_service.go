package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/Mwoo0383/lotto-system/internal/domain"
)

type PoolRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	CountSlots(ctx context.Context, eventID string) (int, error)
	InsertSlots(ctx context.Context, slots []domain.PoolSlot) error
}

const slotNumberCount = 6

type PoolService struct {
	repo      PoolRepository
	clock     clock.Clock
	numberMin int
	numberMax int
}

func NewPoolService(repo PoolRepository, clk clock.Clock, opts ...PoolServiceOption) *PoolService {
	svc := &PoolService{
		repo:      repo,
		clock:     clk,
		numberMin: 1,
		numberMax: 45,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type PoolServiceOption func(*PoolService)

// WithNumberRange overrides the inclusive domain slot numbers are drawn from.
func WithNumberRange(min, max int) PoolServiceOption {
	return func(s *PoolService) {
		s.numberMin = min
		s.numberMax = max
	}
}

type GeneratePoolInput struct {
	EventID     string
	Size        int
	WinnerCount int
}

// GeneratePool builds the full outcome pool for an event in one transaction:
// Size slots, exactly WinnerCount of them winning, each carrying a distinct
// set of six numbers, with assignment ordinals uniformly permuted so claim
// order cannot be read off slot identity. A partial pool is never visible.
func (s *PoolService) GeneratePool(ctx context.Context, in GeneratePoolInput) error {
	if in.EventID == "" {
		return domain.ErrInvalidID
	}
	if in.Size < 1 || in.WinnerCount < 0 || in.WinnerCount > in.Size {
		return domain.ErrInvalidPoolConfig
	}
	span := s.numberMax - s.numberMin + 1
	if span < slotNumberCount {
		return domain.ErrInvalidPoolConfig
	}
	// Every slot needs a distinct combination, so the domain must offer at
	// least Size of them.
	if int64(in.Size) > combinations(span, slotNumberCount) {
		return domain.ErrInvalidPoolConfig
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return err
	}
	if event.PhaseAt(s.clock.Now()) != domain.PhaseReady {
		return domain.ErrEventNotReady
	}

	slots := s.buildSlots(event.ID, in.Size, in.WinnerCount)

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.CountSlots(txCtx, event.ID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return domain.ErrPoolAlreadyExists
		}
		if err := s.repo.InsertSlots(txCtx, slots); err != nil {
			return fmt.Errorf("insert pool slots: %w", err)
		}
		return nil
	})
}

func (s *PoolService) buildSlots(eventID string, size, winnerCount int) []domain.PoolSlot {
	seen := make(map[string]struct{}, size)
	ordinals := rand.Perm(size)

	slots := make([]domain.PoolSlot, size)
	for i := range slots {
		numbers := s.uniqueNumberSet(seen)
		slots[i] = domain.PoolSlot{
			ID:      newID(),
			EventID: eventID,
			Ordinal: ordinals[i],
			Numbers: numbers,
			Winning: i < winnerCount,
		}
	}
	return slots
}

// uniqueNumberSet draws six distinct numbers from the domain, sorted
// ascending, re-drawing until the combination is unused within the pool.
// The numbers are display-only; the winning flag is the outcome.
func (s *PoolService) uniqueNumberSet(seen map[string]struct{}) []int {
	span := s.numberMax - s.numberMin + 1
	for {
		picked := make(map[int]struct{}, slotNumberCount)
		for len(picked) < slotNumberCount {
			picked[s.numberMin+rand.IntN(span)] = struct{}{}
		}
		numbers := make([]int, 0, slotNumberCount)
		for n := range picked {
			numbers = append(numbers, n)
		}
		sort.Ints(numbers)

		key := numberKey(numbers)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		return numbers
	}
}

func numberKey(numbers []int) string {
	return fmt.Sprint(numbers)
}

// combinations returns C(n, k), saturating well above any realistic pool size.
func combinations(n, k int) int64 {
	const limit = int64(1) << 40
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
		if result > limit {
			return limit
		}
	}
	return result
}
