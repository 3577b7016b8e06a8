// Package sms is the outbound verification-code capability. The core treats
// it as "sends a code string to a phone number and may fail".
package sms

import (
	"context"
	"log"

	"github.com/Mwoo0383/lotto-system/internal/domain"
)

type Sender interface {
	SendCode(ctx context.Context, to, code string) error
}

// LogSender is the development default: it records that a code was issued
// without printing the code or the full number.
type LogSender struct {
	Logger *log.Logger
}

func (s LogSender) SendCode(ctx context.Context, to, code string) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("sms: verification code issued to ****%s", domain.PhoneLast4(to))
	return nil
}
