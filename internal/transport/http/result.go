package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Mwoo0383/lotto-system/internal/app"
)

// ResultChecker is the minimal interface for the result endpoint.
type ResultChecker interface {
	CheckResult(ctx context.Context, in app.CheckResultInput) (app.CheckResultOutput, error)
}

type checkResultRequest struct {
	EventID     string `json:"event_id"`
	PhoneNumber string `json:"phone_number"`
}

type checkResultResponse struct {
	FirstCheck   bool   `json:"first_check"`
	Won          bool   `json:"won"`
	ResultLabel  string `json:"result_label"`
	PhoneLast4   string `json:"phone_last4"`
	LottoNumbers []int  `json:"lotto_numbers,omitempty"`
}

// HandleCheckResult reveals a participant's outcome. The first call shows
// the full detail; rechecks return the reduced view without numbers.
func HandleCheckResult(svc ResultChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkResultRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		result, err := svc.CheckResult(r.Context(), app.CheckResultInput{
			EventID:     req.EventID,
			PhoneNumber: req.PhoneNumber,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, checkResultResponse{
			FirstCheck:   result.FirstCheck,
			Won:          result.Won,
			ResultLabel:  result.ResultLabel,
			PhoneLast4:   result.PhoneLast4,
			LottoNumbers: result.LottoNumbers,
		})
	}
}
