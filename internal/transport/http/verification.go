package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/app"
	"github.com/go-chi/chi/v5"
)

// CodeIssuer is the minimal interface for the verification endpoints.
type CodeIssuer interface {
	RequestCode(ctx context.Context, in app.RequestCodeInput) (app.RequestCodeResult, error)
	Verify(ctx context.Context, verificationID, code string) error
}

type requestCodeRequest struct {
	EventID     string `json:"event_id"`
	PhoneNumber string `json:"phone_number"`
}

// HandleRequestCode issues a one-time code for an (event, phone) pair. The
// code travels by SMS only; the response carries just the handle.
func HandleRequestCode(svc CodeIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req requestCodeRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.RequestCode(r.Context(), app.RequestCodeInput{
			EventID:     req.EventID,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			VerificationID string    `json:"verification_id"`
			ExpiresAt      time.Time `json:"expires_at"`
		}{result.VerificationID, result.ExpiresAt})
	}
}

type verifyCodeRequest struct {
	Code string `json:"code"`
}

// HandleVerifyCode consumes a one-time code.
func HandleVerifyCode(svc CodeIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyCodeRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		if err := svc.Verify(r.Context(), chi.URLParam(r, "verificationID"), req.Code); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Verified bool `json:"verified"`
		}{true})
	}
}
