package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/app"
	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/Mwoo0383/lotto-system/internal/testutil"
)

func TestDrawRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewDrawRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("NextUnclaimedSlot walks ordinals in order", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Draw", domain.PhaseActive)
		slot0 := testutil.InsertSlot(t, ctx, pool, eventID, 0, false)
		slot1 := testutil.InsertSlot(t, ctx, pool, eventID, 1, true)

		next, err := repo.NextUnclaimedSlot(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next == nil || next.ID != slot0 {
			t.Fatalf("expected slot ordinal 0 first, got %+v", next)
		}

		if err := repo.ClaimSlot(ctx, slot0, "01011112222", time.Now().UTC()); err != nil {
			t.Fatalf("claim slot: %v", err)
		}

		next, err = repo.NextUnclaimedSlot(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next == nil || next.ID != slot1 {
			t.Fatalf("expected slot ordinal 1 after claim, got %+v", next)
		}

		if err := repo.ClaimSlot(ctx, slot1, "01033334444", time.Now().UTC()); err != nil {
			t.Fatalf("claim slot: %v", err)
		}
		next, err = repo.NextUnclaimedSlot(ctx, eventID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if next != nil {
			t.Fatalf("expected nil on exhausted pool, got %+v", next)
		}
	})

	t.Run("ClaimSlot refuses a claimed slot", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Draw", domain.PhaseActive)
		slotID := testutil.InsertSlot(t, ctx, pool, eventID, 0, false)

		if err := repo.ClaimSlot(ctx, slotID, "01011112222", time.Now().UTC()); err != nil {
			t.Fatalf("first claim: %v", err)
		}
		if err := repo.ClaimSlot(ctx, slotID, "01033334444", time.Now().UTC()); err != domain.ErrPoolExhausted {
			t.Fatalf("expected ErrPoolExhausted, got %v", err)
		}
	})

	t.Run("GetParticipation returns nil when absent", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		eventID := testutil.InsertEvent(t, ctx, pool, "Draw", domain.PhaseActive)
		p, err := repo.GetParticipation(ctx, eventID, "01011112222")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p != nil {
			t.Fatalf("expected nil, got %+v", p)
		}
	})

	t.Run("GetEventForUpdate maps missing and malformed ids", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		err := repo.WithTx(ctx, func(txCtx context.Context) error {
			_, err := repo.GetEventForUpdate(txCtx, "00000000-0000-0000-0000-000000000001")
			if err != domain.ErrEventNotFound {
				t.Fatalf("expected ErrEventNotFound, got %v", err)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("tx failed: %v", err)
		}

		if _, err := repo.GetEventForUpdate(ctx, "not-a-uuid"); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound for malformed id, got %v", err)
		}
	})
}

// Concurrent Participate calls race for the same pool; the event row lock has
// to hand out every slot exactly once.
func TestDrawService_ConcurrentParticipants(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)

	const poolSize = 20
	const winnerCount = 5

	eventID := testutil.InsertEvent(t, ctx, pool, "Launch Draw", domain.PhaseActive)
	for i := 0; i < poolSize; i++ {
		testutil.InsertSlot(t, ctx, pool, eventID, i, i < winnerCount)
	}

	type caller struct {
		phone string
		verID string
	}
	callers := make([]caller, poolSize)
	for i := range callers {
		phone := fmt.Sprintf("0105550%04d", i)
		callers[i] = caller{
			phone: phone,
			verID: testutil.InsertVerification(t, ctx, pool, eventID, phone, true),
		}
	}

	svc := app.NewDrawService(NewDrawRepository(pool), clock.NewSystem())

	var wg sync.WaitGroup
	results := make([]app.ParticipateResult, poolSize)
	errs := make([]error, poolSize)
	for i, c := range callers {
		wg.Add(1)
		go func(i int, c caller) {
			defer wg.Done()
			results[i], errs[i] = svc.Participate(ctx, app.ParticipateInput{
				EventID:        eventID,
				PhoneNumber:    c.phone,
				VerificationID: c.verID,
			})
		}(i, c)
	}
	wg.Wait()

	won := 0
	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i].Won {
			won++
		}
	}
	if won != winnerCount {
		t.Fatalf("expected exactly %d winners, got %d", winnerCount, won)
	}

	var distinctSlots int
	if err := pool.QueryRow(ctx, `SELECT COUNT(DISTINCT slot_id) FROM participations WHERE event_id = $1`, eventID).Scan(&distinctSlots); err != nil {
		t.Fatalf("count slots: %v", err)
	}
	if distinctSlots != poolSize {
		t.Fatalf("expected %d distinct slots claimed, got %d", poolSize, distinctSlots)
	}

	latePhone := "01099998888"
	lateVer := testutil.InsertVerification(t, ctx, pool, eventID, latePhone, true)
	_, err := svc.Participate(ctx, app.ParticipateInput{
		EventID:        eventID,
		PhoneNumber:    latePhone,
		VerificationID: lateVer,
	})
	if err != domain.ErrPoolExhausted {
		t.Fatalf("expected ErrPoolExhausted after full draw, got %v", err)
	}
}
