package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/slack-go/slack"
)

func newRouter(mm *MatchManager, signingSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.With(SlackVerifyMiddleware(signingSecret)).Post("/commands", handleSlackCommand(mm))
	r.Route("/matches/{channel}", func(r chi.Router) {
		r.Get("/", handleMatchState(mm))
		r.Get("/stream", handleMatchStream(mm))
	})
	return r
}

func serveCmd(args []string) int {

	// Environment Variables
	token := os.Getenv("SOCCERGAME_TOKEN")
	signingSecret := os.Getenv("SOCCERGAME_SIGNING_SECRET")
	envPort := os.Getenv("SOCCERGAME_PORT")

	// Flags
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := fs.String("port", "4000", "Define the port on which the server will listen")
	timeout := fs.Duration("timeout", DEFAULT_MATCH_TIMEOUT, "Abort a match after this long")
	traceDir := fs.String("trace-dir", "", "Also write each match trace to <dir>/<channel>.log")
	cfg := matchFlags(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if envPort != "" {
		*port = envPort
	}
	if err := cfg.ValidatePopulation(); err != nil {
		slog.Error("Invalid match configuration", "error", err)
		return 1
	}

	// Match Manager
	matchMgr := NewMatchManager(slack.New(token), *cfg, *timeout)
	if *traceDir != "" {
		matchMgr.WithTraceDir(*traceDir)
	}

	// Server
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", *port),
		Handler:        newRouter(matchMgr, signingSecret),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		slog.Info(fmt.Sprintf("Server running on port %s", *port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case shutdownSignal := <-shutdownChan:
		slog.Info("Shutdown signal received, shutting down gracefully...", "signal", shutdownSignal)
	case err := <-serveErr:
		slog.Error("HTTP Server failed", "error", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP Server failed to shutdown gracefully", "error", err.Error())
	}
	slog.Info("HTTP Server successfully shutdown")
	matchMgr.Shutdown(ctx)
	slog.Info("Match Manager successfully shutdown")
	slog.Info("Shutdown complete. Server exiting.")
	return 0
}
