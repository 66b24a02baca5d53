package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/handler"
)

func StartServer(port string) {
	// Router with middleware
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck error")
		}
	})

	listAccounts, createAccount, renameAccount, deleteAccount := handler.DefaultAccountHandlers()
	svc := handler.DefaultImportService()

	r.Route("/api", func(r chi.Router) {
		r.Get("/accounts", listAccounts)
		r.Post("/accounts", createAccount)
		r.Route("/accounts/{accountID}", func(r chi.Router) {
			r.Put("/", renameAccount)
			r.Delete("/", deleteAccount)
			r.Post("/upload", handler.UploadHandler(svc))
			r.Get("/trading-data", handler.TradingDataHandler(svc))
			r.Get("/stats", handler.StatsHandler(svc))
			r.Put("/journal", handler.JournalHandler(svc))
		})
	})

	// Graceful server
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
