package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/judging-system/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapServiceErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{services.ErrCompetitorNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: competitor 9", services.ErrReference), http.StatusConflict},
		{fmt.Errorf("%w: %w", services.ErrConflict, services.ErrJudgeEmailConflict), http.StatusConflict},
		{services.ErrIncompleteSubmission, http.StatusUnprocessableEntity},
		{&services.ValidationError{Fields: map[string]string{"name": "is required"}}, http.StatusUnprocessableEntity},
		{services.ErrBannerTooLarge, http.StatusRequestEntityTooLarge},
		{services.ErrAuthInvalidCredentials, http.StatusUnauthorized},
		{services.ErrStorageNotConfigured, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			mapServiceErrorToHTTP(rec, req, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"x"}`, ""},
		{"empty", ``, "must not be empty"},
		{"unknown field", `{"nom":"x"}`, "unknown key"},
		{"wrong type", `{"name":1}`, "incorrect JSON type"},
		{"two values", `{"name":"a"}{"name":"b"}`, "single JSON value"},
		{"malformed", `{"name":`, "badly-formed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dst payload
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := readJSON(httptest.NewRecorder(), req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "x", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetIDFromURL(t *testing.T) {
	withParam := func(value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("competitorID", value)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id, err := getIDFromURL(withParam("12"), "competitorID")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := getIDFromURL(withParam(bad), "competitorID")
		assert.Error(t, err, "value %q", bad)
	}
}
