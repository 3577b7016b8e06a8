package http

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Services bundles everything the router mounts.
type Services struct {
	Events        EventDirectory
	Pool          PoolGenerator
	Verifications CodeIssuer
	Draw          SlotClaimer
	Results       ResultChecker
}

// NewRouter wires the public and admin endpoints with logging and CORS.
func NewRouter(svcs Services, corsOrigins []string, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", HandleListEvents(svcs.Events))
		r.Post("/events", HandleCreateEvent(svcs.Events))
		r.Get("/events/active", HandleActiveEvent(svcs.Events))
		r.Get("/events/{eventID}", HandleGetEvent(svcs.Events))
		r.Post("/events/{eventID}/pool", HandleGeneratePool(svcs.Pool))

		r.Post("/verifications", HandleRequestCode(svcs.Verifications))
		r.Post("/verifications/{verificationID}/verify", HandleVerifyCode(svcs.Verifications))

		r.Post("/participations", HandleParticipate(svcs.Draw))
		r.Post("/results", HandleCheckResult(svcs.Results))
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})

	return RequestLogger(CORS(corsOrigins, r), logger)
}
