package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Mwoo0383/lotto-system/internal/app"
	"github.com/go-chi/chi/v5"
)

// EventDirectory is the minimal interface for event lookup and admin
// creation.
type EventDirectory interface {
	CreateEvent(ctx context.Context, in app.CreateEventInput) (app.EventWithPhase, error)
	GetEvent(ctx context.Context, eventID string) (app.EventWithPhase, error)
	ListEvents(ctx context.Context, page, size int) (app.EventPage, error)
	GetActiveEvent(ctx context.Context) (*app.EventWithPhase, error)
}

type eventResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	AnnounceStartAt time.Time `json:"announce_start_at"`
	AnnounceEndAt   time.Time `json:"announce_end_at"`
	Phase           string    `json:"phase"`
}

func toEventResponse(e app.EventWithPhase) eventResponse {
	return eventResponse{
		ID:              e.Event.ID,
		Name:            e.Event.Name,
		StartAt:         e.Event.StartAt,
		EndAt:           e.Event.EndAt,
		AnnounceStartAt: e.Event.AnnounceStartAt,
		AnnounceEndAt:   e.Event.AnnounceEndAt,
		Phase:           string(e.Phase),
	}
}

// HandleListEvents serves the paged event listing.
func HandleListEvents(svc EventDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("size"))

		result, err := svc.ListEvents(r.Context(), page, size)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		events := make([]eventResponse, 0, len(result.Events))
		for _, e := range result.Events {
			events = append(events, toEventResponse(e))
		}

		writeJSON(w, http.StatusOK, struct {
			Events     []eventResponse `json:"events"`
			Page       int             `json:"page"`
			Size       int             `json:"size"`
			Total      int             `json:"total"`
			TotalPages int             `json:"total_pages"`
		}{events, result.Page, result.Size, result.Total, result.TotalPages})
	}
}

type createEventRequest struct {
	Name            string    `json:"name"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	AnnounceStartAt time.Time `json:"announce_start_at"`
	AnnounceEndAt   time.Time `json:"announce_end_at"`
}

// HandleCreateEvent registers a new lottery event (admin).
func HandleCreateEvent(svc EventDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		event, err := svc.CreateEvent(r.Context(), app.CreateEventInput{
			Name:            req.Name,
			StartAt:         req.StartAt,
			EndAt:           req.EndAt,
			AnnounceStartAt: req.AnnounceStartAt,
			AnnounceEndAt:   req.AnnounceEndAt,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(event))
	}
}

// HandleGetEvent serves one event with its computed phase.
func HandleGetEvent(svc EventDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetEvent(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEventResponse(event))
	}
}

// HandleActiveEvent serves the event currently accepting participation.
func HandleActiveEvent(svc EventDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		event, err := svc.GetActiveEvent(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if event == nil {
			writeJSON(w, http.StatusOK, struct {
				Active bool `json:"active"`
			}{false})
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Active bool          `json:"active"`
			Event  eventResponse `json:"event"`
		}{true, toEventResponse(*event)})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
