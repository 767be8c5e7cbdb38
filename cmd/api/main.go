package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJamesThe3rd/settle/internal/auth"
	"github.com/MrJamesThe3rd/settle/internal/config"
	"github.com/MrJamesThe3rd/settle/internal/database"
	"github.com/MrJamesThe3rd/settle/internal/export"
	settleHttp "github.com/MrJamesThe3rd/settle/internal/http"
	txHandler "github.com/MrJamesThe3rd/settle/internal/http/transaction"
	typeHandler "github.com/MrJamesThe3rd/settle/internal/http/transactiontype"
	"github.com/MrJamesThe3rd/settle/internal/importer"
	"github.com/MrJamesThe3rd/settle/internal/transaction"
	txStore "github.com/MrJamesThe3rd/settle/internal/transaction/store"
	"github.com/MrJamesThe3rd/settle/internal/transactiontype"
	typeStore "github.com/MrJamesThe3rd/settle/internal/transactiontype/store"
	"github.com/MrJamesThe3rd/settle/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.RequireAuth(); err != nil {
		slog.Error("invalid auth config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	var (
		validator          = validation.New()
		typeService        = transactiontype.NewService(typeStore.New(db))
		transactionService = transaction.NewService(txStore.New(db), typeService)
		importService      = importer.NewService(validator)
		exportService      = export.NewService(transactionService)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService, importService, exportService, validator)
		typeH        = typeHandler.NewHandler(typeService, validator)
	)

	router := settleHttp.New(
		settleHttp.Options{AppName: cfg.App.Name, CORSOrigin: cfg.CORS.Origin},
		auth.New(cfg.Auth.Secret, cfg.Auth.Cookie),
		transactionH,
		typeH,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "env", cfg.App.Env, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
