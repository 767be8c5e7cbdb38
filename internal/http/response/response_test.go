package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/settle/internal/auth"
	"github.com/MrJamesThe3rd/settle/internal/http/response"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, http.StatusOK, "Transaction deleted successfully", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, float64(200), body["code"])
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Transaction deleted successfully", body["message"])
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
}

func TestError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
	}{
		{
			name:      "Validation",
			err:       validation.Errors{{Type: "required", Field: "mid", Message: "mid is required"}},
			wantCode:  http.StatusBadRequest,
			wantError: "Validation failed",
		},
		{
			name:      "BadRequest",
			err:       response.BadRequest("file field is required"),
			wantCode:  http.StatusBadRequest,
			wantError: "file field is required",
		},
		{name: "InvalidID", err: response.ErrInvalidID, wantCode: http.StatusBadRequest, wantError: "Invalid id"},
		{name: "RouteNotFound", err: response.ErrRouteNotFound, wantCode: http.StatusNotFound, wantError: "Route not found"},
		{name: "MethodNotAllowed", err: response.ErrMethodNotAllowed, wantCode: http.StatusMethodNotAllowed, wantError: "Method not allowed"},
		{name: "Unauthorized", err: auth.ErrUnauthorized, wantCode: http.StatusUnauthorized, wantError: "Please login to continue"},
		{
			name:      "TransactionNotFound",
			err:       fmt.Errorf("getting: %w", transaction.ErrNotFound),
			wantCode:  http.StatusNotFound,
			wantError: "Transaction not found",
		},
		{
			name:      "TypeNotFound",
			err:       transactiontype.ErrNotFound,
			wantCode:  http.StatusNotFound,
			wantError: "Transaction type not found",
		},
		{
			name:      "StoreFailure",
			err:       errors.New("creating transaction: check constraint violated"),
			wantCode:  http.StatusInternalServerError,
			wantError: "creating transaction: check constraint violated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.Error(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)

			body := decode(t, rec)
			assert.Equal(t, float64(tt.wantCode), body["code"])
			assert.Equal(t, "error", body["status"])

			data, ok := body["data"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantError, data["error"])
		})
	}
}

func TestError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Error(rec, validation.Errors{
		{Type: "required", Field: "mid", Message: "mid is required"},
		{Type: "numberMin", Field: "amount", Message: "amount must be at least 0", Expected: 0.0, Actual: -1.0},
	})

	data := decode(t, rec)["data"].(map[string]any)
	details, ok := data["details"].([]any)
	require.True(t, ok)
	require.Len(t, details, 2)

	first := details[0].(map[string]any)
	assert.Equal(t, "required", first["type"])
	assert.Equal(t, "mid", first["field"])
}

func TestRequireJSON(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name        string
		body        string
		contentType string
		wantCode    int
	}{
		{name: "JSON", body: `{}`, contentType: "application/json", wantCode: http.StatusNoContent},
		{name: "JSONWithCharset", body: `{}`, contentType: "application/json; charset=utf-8", wantCode: http.StatusNoContent},
		{name: "EmptyBody", wantCode: http.StatusNoContent},
		{name: "MissingContentType", body: `{}`, wantCode: http.StatusBadRequest},
		{name: "PlainText", body: `{}`, contentType: "text/plain", wantCode: http.StatusBadRequest},
		{name: "Malformed", body: `{}`, contentType: "application/", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}

			rec := httptest.NewRecorder()
			response.RequireJSON(next).ServeHTTP(rec, r)

			require.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusBadRequest {
				body := decode(t, rec)
				assert.Equal(t, "error", body["status"])
				assert.Equal(t, "Content-Type must be application/json", body["data"].(map[string]any)["error"])
			}
		})
	}
}
