// Package response writes the JSON envelope shared by every endpoint:
//
//	{"code": 200, "status": "success", "message": "...", "data": ...}
//	{"code": 404, "status": "error", "data": {"error": "Transaction not found"}}
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/MrJamesThe3rd/settle/internal/auth"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	ErrInvalidID        = errors.New("invalid id")
	ErrRouteNotFound    = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

type Envelope struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type ErrorBody struct {
	Error   string            `json:"error"`
	Details validation.Errors `json:"details,omitempty"`
}

// BadRequestError is a client mistake outside schema validation, such as a
// missing multipart field.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

func BadRequest(message string) error {
	return &BadRequestError{Message: message}
}

func OK(w http.ResponseWriter, code int, message string, data any) {
	write(w, code, Envelope{Code: code, Status: StatusSuccess, Message: message, Data: data})
}

// Error classifies err and writes the matching error envelope. Anything not
// recognized is a 500 carrying the error text.
func Error(w http.ResponseWriter, err error) {
	code, body := classify(err)
	if code == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}

	write(w, code, Envelope{Code: code, Status: StatusError, Data: body})
}

func classify(err error) (int, ErrorBody) {
	var (
		violations validation.Errors
		badRequest *BadRequestError
	)

	switch {
	case errors.As(err, &violations):
		return http.StatusBadRequest, ErrorBody{Error: "Validation failed", Details: violations}
	case errors.As(err, &badRequest):
		return http.StatusBadRequest, ErrorBody{Error: badRequest.Message}
	case errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest, ErrorBody{Error: "Invalid id"}
	case errors.Is(err, ErrRouteNotFound):
		return http.StatusNotFound, ErrorBody{Error: "Route not found"}
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, ErrorBody{Error: "Method not allowed"}
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorBody{Error: "Please login to continue"}
	case errors.Is(err, transaction.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "Transaction not found"}
	case errors.Is(err, transactiontype.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "Transaction type not found"}
	}

	return http.StatusInternalServerError, ErrorBody{Error: err.Error()}
}

// RequireJSON rejects request bodies that are not declared as JSON. Requests
// without a body pass through so the handler reports the missing payload.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "application/json" {
			Error(w, BadRequest("Content-Type must be application/json"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func write(w http.ResponseWriter, code int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
