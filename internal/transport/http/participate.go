package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Mwoo0383/lotto-system/internal/app"
)

// SlotClaimer is the minimal interface for the draw endpoint.
type SlotClaimer interface {
	Participate(ctx context.Context, in app.ParticipateInput) (app.ParticipateResult, error)
}

type participateRequest struct {
	EventID        string `json:"event_id"`
	PhoneNumber    string `json:"phone_number"`
	VerificationID string `json:"verification_id"`
}

type participateResponse struct {
	PhoneLast4   string `json:"phone_last4"`
	LottoNumbers []int  `json:"lotto_numbers"`
	Won          bool   `json:"won"`
	Message      string `json:"message"`
}

// HandleParticipate claims a lottery slot for a verified phone number.
// Retrying the same pair returns the original binding, so the endpoint is
// safe to call again after a dropped response.
func HandleParticipate(svc SlotClaimer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req participateRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.Participate(r.Context(), app.ParticipateInput{
			EventID:        req.EventID,
			PhoneNumber:    req.PhoneNumber,
			VerificationID: req.VerificationID,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, participateResponse{
			PhoneLast4:   result.PhoneLast4,
			LottoNumbers: result.LottoNumbers,
			Won:          result.Won,
			Message:      result.Message,
		})
	}
}
