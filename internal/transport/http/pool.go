package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Mwoo0383/lotto-system/internal/app"
	"github.com/go-chi/chi/v5"
)

// PoolGenerator is the minimal interface for pool generation.
type PoolGenerator interface {
	GeneratePool(ctx context.Context, in app.GeneratePoolInput) error
}

type generatePoolRequest struct {
	Size        int `json:"size"`
	WinnerCount int `json:"winner_count"`
}

// HandleGeneratePool builds the outcome pool for an event (admin, once per
// event, before the participation window opens).
func HandleGeneratePool(svc PoolGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "eventID")

		var req generatePoolRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		err := svc.GeneratePool(r.Context(), app.GeneratePoolInput{
			EventID:     eventID,
			Size:        req.Size,
			WinnerCount: req.WinnerCount,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			EventID     string `json:"event_id"`
			Size        int    `json:"size"`
			WinnerCount int    `json:"winner_count"`
		}{eventID, req.Size, req.WinnerCount})
	}
}
