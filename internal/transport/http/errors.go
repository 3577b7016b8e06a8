package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mwoo0383/lotto-system/internal/domain"
)

const (
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeInvalidID            = "invalid_id"
	codeInvalidPhone         = "invalid_phone_number"
	codeInvalidWindow        = "invalid_event_window"
	codeEventNameRequired    = "event_name_required"
	codeEventNotFound        = "event_not_found"
	codeEventNotActive       = "event_not_active"
	codeEventNotReady        = "event_not_ready"
	codeVerificationNotFound = "verification_not_found"
	codeCodeExpired          = "code_expired"
	codeCodeConsumed         = "code_already_consumed"
	codeCodeMismatch         = "code_mismatch"
	codeTooManyAttempts      = "too_many_attempts"
	codeNotVerified          = "not_verified"
	codePoolExists           = "pool_already_exists"
	codePoolNotGenerated     = "pool_not_generated"
	codePoolExhausted        = "pool_exhausted"
	codeInvalidPoolConfig    = "invalid_pool_configuration"
	codeNotParticipated      = "not_participated"
	codeResultsNotOpen       = "results_not_open"
	codeSendFailed           = "send_failed"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeServiceError maps domain sentinels onto HTTP statuses and stable
// error codes.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, codeInternalError
	msg := err.Error()

	switch {
	case errors.Is(err, domain.ErrInvalidID):
		status, code = http.StatusBadRequest, codeInvalidID
	case errors.Is(err, domain.ErrInvalidPhoneNumber):
		status, code = http.StatusBadRequest, codeInvalidPhone
	case errors.Is(err, domain.ErrInvalidEventWindow):
		status, code = http.StatusBadRequest, codeInvalidWindow
	case errors.Is(err, domain.ErrEventNameRequired):
		status, code = http.StatusBadRequest, codeEventNameRequired
	case errors.Is(err, domain.ErrInvalidPoolConfig):
		status, code = http.StatusBadRequest, codeInvalidPoolConfig
	case errors.Is(err, domain.ErrEventNotFound):
		status, code = http.StatusNotFound, codeEventNotFound
	case errors.Is(err, domain.ErrVerificationNotFound):
		status, code = http.StatusNotFound, codeVerificationNotFound
	case errors.Is(err, domain.ErrNotParticipated):
		status, code = http.StatusNotFound, codeNotParticipated
	case errors.Is(err, domain.ErrEventNotActive):
		status, code = http.StatusConflict, codeEventNotActive
	case errors.Is(err, domain.ErrEventNotReady):
		status, code = http.StatusConflict, codeEventNotReady
	case errors.Is(err, domain.ErrResultsNotOpen):
		status, code = http.StatusConflict, codeResultsNotOpen
	case errors.Is(err, domain.ErrPoolAlreadyExists):
		status, code = http.StatusConflict, codePoolExists
	case errors.Is(err, domain.ErrPoolNotGenerated):
		status, code = http.StatusConflict, codePoolNotGenerated
	case errors.Is(err, domain.ErrPoolExhausted):
		status, code = http.StatusConflict, codePoolExhausted
	case errors.Is(err, domain.ErrCodeAlreadyConsumed):
		status, code = http.StatusConflict, codeCodeConsumed
	case errors.Is(err, domain.ErrCodeExpired):
		status, code = http.StatusUnauthorized, codeCodeExpired
	case errors.Is(err, domain.ErrCodeMismatch):
		status, code = http.StatusUnauthorized, codeCodeMismatch
	case errors.Is(err, domain.ErrTooManyAttempts):
		status, code = http.StatusUnauthorized, codeTooManyAttempts
	case errors.Is(err, domain.ErrNotVerified):
		status, code = http.StatusUnauthorized, codeNotVerified
	case errors.Is(err, domain.ErrSendFailed):
		status, code = http.StatusBadGateway, codeSendFailed
	default:
		msg = "internal error"
	}

	writeError(w, status, code, msg)
}
