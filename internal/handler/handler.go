package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// SessionHeader carries the shopper's cart session.
	SessionHeader = "X-Session-ID"

	// UserHeader carries the caller's id as asserted by the upstream
	// identity provider.
	UserHeader = "X-User-ID"

	maxSessionIDLength = 128
	maxBodyBytes       = 1 << 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON writes a JSON response with the given status code. The status
// is already sent when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message}, logger)
}

// writeServiceError maps a service error to a response. Domain errors keep
// their code and message; anything else becomes a 500 with fallback as the
// message.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	if de, ok := model.AsDomainError(err); ok {
		writeError(w, StatusFor(de.Code), de.Code, de.Message, logger)
		return
	}
	logger.Error().Err(err).Msg(fallback)
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
}

// StatusFor returns the HTTP status a domain error code is reported with.
func StatusFor(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeValidation,
		model.ErrCodeMissingSession,
		model.ErrCodeInvalidPromo:
		return http.StatusBadRequest
	case model.ErrCodeMissingUser, model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeProductNotFound, model.ErrCodeVoucherNotFound:
		return http.StatusNotFound
	case model.ErrCodeProductUnavailable, model.ErrCodeCartEmpty:
		return http.StatusConflict
	case model.ErrCodeNoActiveVoucher,
		model.ErrCodeVoucherCodeMismatch,
		model.ErrCodeVoucherInactive,
		model.ErrCodeVoucherExpired:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into dst and validates it. It writes the error
// response itself and reports whether the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}

	if err := validate.StructCtx(r.Context(), dst); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, validationMessage(err), logger)
		return false
	}

	return true
}

// validationMessage flattens validator errors into "field: rule" pairs.
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}

	parts := make([]string, len(ve))
	for i, fe := range ve {
		if fe.Param() != "" {
			parts[i] = fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			parts[i] = fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}

// sessionID returns the request's cart session. When mint is set and the
// header is absent a fresh id is issued and echoed back in the response.
func sessionID(w http.ResponseWriter, r *http.Request, mint bool) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(SessionHeader))
	if id == "" && mint {
		id = uuid.NewString()
	}
	if id == "" || len(id) > maxSessionIDLength {
		return "", false
	}
	w.Header().Set(SessionHeader, id)
	return id, true
}

// userID returns the caller id forwarded by the identity provider.
func userID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(UserHeader))
	return id, id != ""
}
