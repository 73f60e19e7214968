package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// internalMessage is the only text an unexpected failure ever shows a client.
const internalMessage = "An error has occurred on the server"

// ErrorBody is the wire shape shared by every error response.
type ErrorBody struct {
	Message string             `json:"message"`
	Fields  []types.FieldError `json:"fields,omitempty"`
}

func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindUnauthorized:
		return http.StatusUnauthorized
	case types.KindForbidden:
		return http.StatusForbidden
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the terminal error handler: the single place a typed failure is
// translated into a status code and wire body. Anything that is not an
// AppError is reported as internal with a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *types.AppError
	if !errors.As(err, &appErr) {
		appErr = types.NewInternal(internalMessage, err)
	}

	status := statusForKind(appErr.Kind)
	reqID := middleware.GetReqID(r.Context())

	if appErr.Kind == types.KindInternal {
		slog.ErrorContext(r.Context(), "Request failed",
			slog.Any("error", err),
			slog.Int("status", status),
			slog.String("request_id", reqID),
		)
		WriteJSONResponse(w, r, status, ErrorBody{Message: internalMessage})
		return
	}

	slog.WarnContext(r.Context(), "Request rejected",
		slog.String("kind", string(appErr.Kind)),
		slog.Int("status", status),
		slog.String("message", appErr.Message),
		slog.String("request_id", reqID),
	)
	WriteJSONResponse(w, r, status, ErrorBody{Message: appErr.Message, Fields: appErr.Fields})
}
