package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/streletskiy/archimap-sub000/internal/domain"
)

// Error codes of the response envelope.
const (
	codeValidation     = "VALIDATION"
	codeNothingToMerge = "NOTHING_TO_MERGE"
	codeUnauthorized   = "UNAUTHORIZED"
	codeForbidden      = "FORBIDDEN"
	codeNotFound       = "NOT_FOUND"
	codeConflict       = "CONFLICT"
	codeUnavailable    = "UNAVAILABLE"
	codeInternal       = "INTERNAL"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Fields  []fieldErrorBody `json:"fields,omitempty"`

	ProposalID         int64      `json:"proposalId,omitempty"`
	ProposalCreatedAt  *time.Time `json:"proposalCreatedAt,omitempty"`
	CanonicalUpdatedAt *time.Time `json:"canonicalUpdatedAt,omitempty"`
}

type fieldErrorBody struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// handleError maps service errors onto HTTP statuses and envelope codes.
// Unexpected errors are logged and reported as 500 without details.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		ve    *domain.ValidationError
		stale *domain.StaleProposalError
	)

	switch {
	case errors.As(err, &stale):
		created, updated := stale.ProposalCreatedAt.UTC(), stale.CanonicalUpdatedAt.UTC()
		writeJSON(w, http.StatusConflict, errorEnvelope{Error: errorBody{
			Code:               stale.Code(),
			Message:            "canonical record changed after the proposal was created",
			ProposalID:         stale.ProposalID,
			ProposalCreatedAt:  &created,
			CanonicalUpdatedAt: &updated,
		}})
	case errors.As(err, &ve):
		body := errorBody{Code: codeValidation, Message: ve.Error()}
		for _, fe := range ve.Errors {
			body.Fields = append(body.Fields, fieldErrorBody{Field: wireName(fe.Field), Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: body})
	case errors.Is(err, domain.ErrNothingToMerge):
		writeError(w, http.StatusBadRequest, codeNothingToMerge, "no fields eligible for merge")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, codeForbidden, "access denied")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, codeConflict, "proposal already resolved or changed concurrently")
	case errors.Is(err, domain.ErrTransient):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, codeUnavailable, "temporarily unavailable, retry")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return domain.NewValidationError("body", "invalid JSON")
	}
	return nil
}
