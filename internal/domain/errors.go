package domain

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventNotActive       = errors.New("event is not accepting participation")
	ErrEventNotReady        = errors.New("event has already started")
	ErrInvalidEventWindow   = errors.New("event windows must be strictly ordered")
	ErrEventNameRequired    = errors.New("event name required")
	ErrInvalidPhoneNumber   = errors.New("invalid phone number")
	ErrVerificationNotFound = errors.New("verification not found")
	ErrCodeExpired          = errors.New("verification code expired")
	ErrCodeAlreadyConsumed  = errors.New("verification code already used")
	ErrCodeMismatch         = errors.New("verification code does not match")
	ErrTooManyAttempts      = errors.New("too many verification attempts")
	ErrNotVerified          = errors.New("phone number is not verified")
	ErrPoolAlreadyExists    = errors.New("pool already generated for event")
	ErrPoolNotGenerated     = errors.New("pool not generated for event")
	ErrPoolExhausted        = errors.New("no unclaimed slot remains")
	ErrInvalidPoolConfig    = errors.New("invalid pool configuration")
	ErrNotParticipated      = errors.New("no participation for phone number")
	ErrResultsNotOpen       = errors.New("results are not open")
	ErrSendFailed           = errors.New("sending verification code failed")
	ErrInvalidID            = errors.New("invalid id")
)
