package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Mwoo0383/lotto-system/internal/app"
	"github.com/Mwoo0383/lotto-system/internal/domain"
	"github.com/go-chi/chi/v5"
)

func TestHandleGeneratePool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "success",
			body:           `{"size":100,"winner_count":7}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"winner_count":7`,
		},
		{
			name:           "invalid json",
			body:           `{"size":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "already generated",
			body:           `{"size":100,"winner_count":7}`,
			serviceErr:     domain.ErrPoolAlreadyExists,
			expectedStatus: http.StatusConflict,
			expectedSubstr: `"code":"pool_already_exists"`,
		},
		{
			name:           "event already started",
			body:           `{"size":100,"winner_count":7}`,
			serviceErr:     domain.ErrEventNotReady,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "bad configuration",
			body:           `{"size":10,"winner_count":11}`,
			serviceErr:     domain.ErrInvalidPoolConfig,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubPoolService{err: tt.serviceErr}

			r := chi.NewRouter()
			r.Post("/api/events/{eventID}/pool", HandleGeneratePool(svc))

			req := httptest.NewRequest(http.MethodPost, "/api/events/event-1/pool", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected response to contain %q, got %q", tt.expectedSubstr, rec.Body.String())
			}
			if tt.serviceErr == nil && rec.Code == http.StatusCreated && svc.input.EventID != "event-1" {
				t.Fatalf("expected event id from path, got %q", svc.input.EventID)
			}
		})
	}
}

type stubPoolService struct {
	input app.GeneratePoolInput
	err   error
}

func (s *stubPoolService) GeneratePool(_ context.Context, in app.GeneratePoolInput) error {
	s.input = in
	return s.err
}
