package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/clock"
	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/Mwoo0383/lotto-system/internal/sms"
)

type VerificationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	ConsumeActiveCodes(ctx context.Context, eventID, phone string, now time.Time) error
	CreateVerification(ctx context.Context, v domain.Verification) error
	GetVerificationForUpdate(ctx context.Context, id string) (domain.Verification, error)
	IncrementAttempts(ctx context.Context, id string) error
	MarkConsumed(ctx context.Context, id string) (bool, error)
}

// CodeStore holds issued code strings keyed by verification ID, with a TTL
// matching the verification expiry.
type CodeStore interface {
	Save(ctx context.Context, key, code string, ttl time.Duration) error
	Get(ctx context.Context, key string) (code string, ok bool, err error)
	Delete(ctx context.Context, key string) error
}

const (
	defaultCodeTTL     = 180 * time.Second
	defaultCodeLength  = 6
	defaultMaxAttempts = 5
)

type VerificationService struct {
	repo        VerificationRepository
	codes       CodeStore
	sender      sms.Sender
	clock       clock.Clock
	codeTTL     time.Duration
	codeLength  int
	maxAttempts int
}

func NewVerificationService(repo VerificationRepository, codes CodeStore, sender sms.Sender, clk clock.Clock, opts ...VerificationServiceOption) *VerificationService {
	svc := &VerificationService{
		repo:        repo,
		codes:       codes,
		sender:      sender,
		clock:       clk,
		codeTTL:     defaultCodeTTL,
		codeLength:  defaultCodeLength,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type VerificationServiceOption func(*VerificationService)

// WithCodeTTL overrides the default 180-second code lifetime.
func WithCodeTTL(d time.Duration) VerificationServiceOption {
	return func(s *VerificationService) {
		if d > 0 {
			s.codeTTL = d
		}
	}
}

// WithMaxAttempts overrides the mismatch limit before lockout.
func WithMaxAttempts(n int) VerificationServiceOption {
	return func(s *VerificationService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

type RequestCodeInput struct {
	EventID     string
	PhoneNumber string
}

type RequestCodeResult struct {
	VerificationID string
	ExpiresAt      time.Time
}

// RequestCode issues a fresh one-time code for an (event, phone) pair. Any
// prior active code for the pair stops being usable. The code itself is
// dispatched through the sender, never returned.
func (s *VerificationService) RequestCode(ctx context.Context, in RequestCodeInput) (RequestCodeResult, error) {
	if in.EventID == "" {
		return RequestCodeResult{}, domain.ErrInvalidID
	}
	phone, err := domain.NormalizePhone(in.PhoneNumber)
	if err != nil {
		return RequestCodeResult{}, err
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return RequestCodeResult{}, err
	}
	now := s.clock.Now()
	if event.PhaseAt(now) != domain.PhaseActive {
		return RequestCodeResult{}, domain.ErrEventNotActive
	}

	verification := domain.Verification{
		ID:          newID(),
		EventID:     event.ID,
		PhoneNumber: phone,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.codeTTL),
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.ConsumeActiveCodes(txCtx, event.ID, phone, now); err != nil {
			return err
		}
		return s.repo.CreateVerification(txCtx, verification)
	})
	if err != nil {
		return RequestCodeResult{}, err
	}

	code := newNumericCode(s.codeLength)
	if err := s.codes.Save(ctx, codeKey(verification.ID), code, s.codeTTL); err != nil {
		return RequestCodeResult{}, err
	}
	if err := s.sender.SendCode(ctx, phone, code); err != nil {
		return RequestCodeResult{}, fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}

	return RequestCodeResult{VerificationID: verification.ID, ExpiresAt: verification.ExpiresAt}, nil
}

// Verify consumes the code for verificationID. The transition to consumed is
// one-shot: once it succeeds every later call fails with
// ErrCodeAlreadyConsumed, correct code or not. Mismatches increment the
// attempts counter durably even though the call itself fails.
func (s *VerificationService) Verify(ctx context.Context, verificationID, code string) error {
	if verificationID == "" {
		return domain.ErrVerificationNotFound
	}
	now := s.clock.Now()

	// Mismatch must commit the attempts increment, so the failure is carried
	// out of the transaction instead of rolling it back.
	var verifyErr error

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		verification, err := s.repo.GetVerificationForUpdate(txCtx, verificationID)
		if err != nil {
			return err
		}
		if verification.Consumed {
			return domain.ErrCodeAlreadyConsumed
		}
		if verification.ExpiredAt(now) {
			return domain.ErrCodeExpired
		}
		if verification.Attempts >= s.maxAttempts {
			return domain.ErrTooManyAttempts
		}

		stored, ok, err := s.codes.Get(txCtx, codeKey(verificationID))
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrCodeExpired
		}
		if stored != code {
			if err := s.repo.IncrementAttempts(txCtx, verificationID); err != nil {
				return err
			}
			verifyErr = domain.ErrCodeMismatch
			return nil
		}

		consumed, err := s.repo.MarkConsumed(txCtx, verificationID)
		if err != nil {
			return err
		}
		if !consumed {
			return domain.ErrCodeAlreadyConsumed
		}
		_ = s.codes.Delete(txCtx, codeKey(verificationID))
		return nil
	})
	if err != nil {
		return err
	}
	return verifyErr
}

func codeKey(verificationID string) string {
	return "verification:" + verificationID
}
