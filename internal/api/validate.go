package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// Validatable is implemented by request body types that carry their own
// schema rules.
type Validatable interface {
	Validate() error
}

type bodyContextKey struct{}

// ValidateBody decodes and schema-checks the request body strictly before
// the rest of the middleware chain runs, so malformed requests short-circuit
// with a Validation error without ever reaching identity resolution. The
// decoded value is placed on the request context for the handler.
func ValidateBody[T Validatable]() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body T
			if err := DecodeJSONBody(w, r, &body); err != nil {
				Error(w, r, types.NewValidation(err.Error()))
				return
			}
			if err := body.Validate(); err != nil {
				Error(w, r, ValidationError(err))
				return
			}
			ctx := context.WithValue(r.Context(), bodyContextKey{}, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BodyFromContext returns the body decoded by ValidateBody.
func BodyFromContext[T Validatable](ctx context.Context) (T, bool) {
	body, ok := ctx.Value(bodyContextKey{}).(T)
	return body, ok
}

// ValidateUUIDParam rejects requests whose named URL parameter is not a
// well-formed id. A malformed id is a Validation failure, not an internal
// one, even though it originates as a parse error.
func ValidateUUIDParam(name string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := uuid.Parse(chi.URLParam(r, name)); err != nil {
				Error(w, r, types.NewValidation(fmt.Sprintf("The %q parameter must be a valid id", name)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// URLParamUUID returns the named URL parameter already vetted by
// ValidateUUIDParam.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, types.NewValidation(fmt.Sprintf("The %q parameter must be a valid id", name))
	}
	return id, nil
}

// ValidationError flattens an ozzo-validation error map into the Validation
// kind with a stable, field-sorted error list.
func ValidationError(err error) *types.AppError {
	var fields []types.FieldError
	if verrs, ok := err.(validation.Errors); ok {
		names := make([]string, 0, len(verrs))
		for name := range verrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fields = append(fields, types.FieldError{Field: name, Message: verrs[name].Error()})
		}
	}
	return types.NewValidation("Invalid request data", fields...)
}
