package http

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/settle/internal/auth"
	"github.com/MrJamesThe3rd/settle/internal/http/response"
	"github.com/MrJamesThe3rd/settle/internal/http/transaction"
	"github.com/MrJamesThe3rd/settle/internal/http/transactiontype"
)

type Options struct {
	AppName    string
	CORSOrigin string
}

func New(
	opts Options,
	verifier *auth.Verifier,
	transactionsV1 *transaction.Handler,
	typesV1 *transactiontype.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, response.ErrRouteNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, response.ErrMethodNotAllowed)
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, http.StatusOK, opts.AppName+" is running", nil)
	})

	router.Group(func(r chi.Router) {
		r.Use(RequireAuth(verifier))

		r.Route("/transactions", transactionsV1.Routes)
		r.Route("/transactions-type", typesV1.Routes)
	})

	return router
}

// RequireAuth rejects requests without a valid session token and stores the
// token subject in the request context.
func RequireAuth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := verifier.Authenticate(r)
			if err != nil {
				response.Error(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithSubject(r.Context(), subject)))
		})
	}
}

// Recoverer turns a handler panic into a 500 envelope and logs the stack.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}

			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			slog.Error("panic recovered", "panic", rvr, "path", r.URL.Path, "stack", string(debug.Stack()))

			if r.Header.Get("Connection") != "Upgrade" {
				response.Error(w, errors.New("internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
