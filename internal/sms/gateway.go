package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

// GatewaySender delivers codes through an HTTP SMS gateway (CoolSMS-style
// single-message API).
type GatewaySender struct {
	endpoint   string
	apiKey     string
	apiSecret  string
	fromNumber string
	client     *http.Client
}

func NewGatewaySender(endpoint, apiKey, apiSecret, fromNumber string) *GatewaySender {
	return &GatewaySender{
		endpoint:   endpoint,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		fromNumber: fromNumber,
		client:     &http.Client{Timeout: defaultTimeout},
	}
}

type gatewayMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

func (s *GatewaySender) SendCode(ctx context.Context, to, code string) error {
	msg := gatewayMessage{
		From: s.fromNumber,
		To:   to,
		Text: fmt.Sprintf("[Lotto Event] Verification code: %s (enter within 3 minutes)", code),
	}
	body, err := json.Marshal(struct {
		Message gatewayMessage `json:"message"`
	}{Message: msg})
	if err != nil {
		return fmt.Errorf("encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(s.apiKey, s.apiSecret)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}
