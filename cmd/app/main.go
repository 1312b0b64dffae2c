package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"vetbook-service/internal/ai"
	"vetbook-service/internal/config"
	blockCreate "vetbook-service/internal/http-server/handlers/blocks/create"
	blockDelete "vetbook-service/internal/http-server/handlers/blocks/delete"
	bookingAdvice "vetbook-service/internal/http-server/handlers/bookings/advice"
	bookingBoard "vetbook-service/internal/http-server/handlers/bookings/board"
	bookingCancel "vetbook-service/internal/http-server/handlers/bookings/cancel"
	bookingClipboard "vetbook-service/internal/http-server/handlers/bookings/clipboard"
	bookingComplete "vetbook-service/internal/http-server/handlers/bookings/complete"
	bookingConfirm "vetbook-service/internal/http-server/handlers/bookings/confirm"
	bookingCreate "vetbook-service/internal/http-server/handlers/bookings/create"
	bookingDelete "vetbook-service/internal/http-server/handlers/bookings/delete"
	bookingGet "vetbook-service/internal/http-server/handlers/bookings/get"
	bookingMove "vetbook-service/internal/http-server/handlers/bookings/move"
	bookingPaste "vetbook-service/internal/http-server/handlers/bookings/paste"
	clinicGet "vetbook-service/internal/http-server/handlers/clinics/get"
	pendingCount "vetbook-service/internal/http-server/handlers/counts/pending"
	slotGet "vetbook-service/internal/http-server/handlers/slots/get"
	triageQuestions "vetbook-service/internal/http-server/handlers/triage/questions"
	triageValidate "vetbook-service/internal/http-server/handlers/triage/validate"
	"vetbook-service/internal/lock"
	"vetbook-service/internal/notify"
	svc "vetbook-service/internal/service"
	"vetbook-service/internal/storage/postgres"
	"vetbook-service/pkg/handlers/slogpretty"
	"vetbook-service/pkg/middleware/mwlogger"
	"vetbook-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		log.Error("Failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	locker, err := lock.NewRedisLock(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	publisher, err := notify.NewPublisher(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init publisher", sl.Err(err))
		os.Exit(1)
	}

	counter, err := notify.NewPendingCounter(cfg.RedisAddr, log)
	if err != nil {
		log.Error("Failed to init pending counter", sl.Err(err))
		os.Exit(1)
	}

	analyzer := ai.New(cfg.AI.AnalysisURL, cfg.AI.AdviceURL, cfg.AI.Timeout)

	service := svc.NewService(storage, locker, publisher, analyzer, svc.Settings{
		SlotDurationMinutes: cfg.Booking.SlotDurationMinutes,
		HorizonDays:         cfg.Booking.HorizonDays,
		LockTTL:             cfg.Booking.LockTTL,
	})

	seedPendingCounts(log, storage, service, counter)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Clinics
	router.Get("/clinics/{slug}", clinicGet.New(log, service))
	router.Get("/clinics/{slug}/slots", slotGet.New(log, service))
	router.Get("/clinics/{id}/board", bookingBoard.New(log, service))
	router.Get("/clinics/{id}/pending-count", pendingCount.New(log, counter))

	// Triage
	router.Post("/triage/questions", triageQuestions.New(log, service))
	router.Post("/triage/validate", triageValidate.New(log, service))

	// Bookings
	router.Post("/bookings", bookingCreate.New(log, service))
	router.Get("/bookings/{id}", bookingGet.New(log, service))
	router.Get("/bookings/{id}/advice", bookingAdvice.New(log, service))
	router.Post("/bookings/{id}/confirm", bookingConfirm.New(log, service))
	router.Post("/bookings/{id}/cancel", bookingCancel.New(log, service))
	router.Post("/bookings/{id}/complete", bookingComplete.New(log, service))
	router.Post("/bookings/{id}/move", bookingMove.New(log, service))
	router.Post("/bookings/{id}/clipboard", bookingClipboard.New(log, service))
	router.Post("/bookings/paste", bookingPaste.New(log, service))
	router.Delete("/bookings/{id}", bookingDelete.New(log, service))

	// Blocked ranges
	router.Post("/blocks", blockCreate.New(log, service))
	router.Delete("/blocks", blockDelete.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server failed", sl.Err(err))
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := counter.Close(); err != nil {
		log.Error("Failed to close pending counter", sl.Err(err))
	}

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close publisher", sl.Err(err))
	}

	if err := locker.Close(); err != nil {
		log.Error("Failed to close locker", sl.Err(err))
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

// seedPendingCounts primes the live counter with the pending bookings already
// in the store, so staff badges are correct before the first pub/sub event.
func seedPendingCounts(log *slog.Logger, storage *postgres.Storage, service *svc.Service, counter *notify.PendingCounter) {
	ctx := context.Background()

	clinicIDs, err := storage.ListClinicIDs(ctx)
	if err != nil {
		log.Error("Failed to list clinics for seeding", sl.Err(err))
		return
	}

	for _, clinicID := range clinicIDs {
		ids, err := service.PendingBookingIDs(ctx, clinicID)
		if err != nil {
			log.Error("Failed to seed pending count", slog.String("clinic_id", clinicID), sl.Err(err))
			continue
		}

		counter.Seed(clinicID, ids)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
