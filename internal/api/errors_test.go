package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"Validation", types.NewValidation("Invalid request data"), http.StatusBadRequest, "Invalid request data"},
		{"Unauthorized", types.NewUnauthorized("Authorization required"), http.StatusUnauthorized, "Authorization required"},
		{"Forbidden", types.NewForbidden("You are not allowed to delete this item"), http.StatusForbidden, "You are not allowed to delete this item"},
		{"NotFound", types.NewNotFound("Item not found"), http.StatusNotFound, "Item not found"},
		{"Conflict", types.NewConflict("A user with this email already exists"), http.StatusConflict, "A user with this email already exists"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			Error(w, r, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantMsg, body.Message)
		})
	}
}

func TestErrorNeverLeaksInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(w, r, errors.New("pq: connection refused on 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, internalMessage, body.Message)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
}

func TestErrorWrappedInternalStaysGeneric(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(w, r, types.NewInternal("Failed to fetch user", errors.New("driver detail")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "driver detail")
	assert.Contains(t, w.Body.String(), internalMessage)
}

func TestErrorIncludesFieldList(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/signup", nil)

	Error(w, r, types.NewValidation("Invalid request data",
		types.FieldError{Field: "email", Message: `The "email" field must be a valid email format`},
	))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "email", body.Fields[0].Field)
}
