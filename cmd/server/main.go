package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/hamisi99-03/BusinessWebsite/internal/auth"
	"github.com/hamisi99-03/BusinessWebsite/internal/config"
	"github.com/hamisi99-03/BusinessWebsite/internal/httpapi"
	"github.com/hamisi99-03/BusinessWebsite/internal/service"
	"github.com/hamisi99-03/BusinessWebsite/internal/storage/sqlite"
	"github.com/hamisi99-03/BusinessWebsite/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	orders := service.NewOrderService(store, cfg.DebtDueDays)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	app := httpapi.NewApp(orders, store, authenticator, jwtManager)
	handler := httpapi.NewRouter(app)

	// h2c lets clients speak HTTP/2 without TLS, which is what sits behind
	// the reverse proxy in deployment.
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	go func() {
		slog.Info("Server starting", "address", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
