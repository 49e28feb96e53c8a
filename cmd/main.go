package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/Vovarama1992/ai-dietician/internal/advisor"
	"github.com/Vovarama1992/ai-dietician/internal/ai"
	"github.com/Vovarama1992/ai-dietician/internal/archive"
	"github.com/Vovarama1992/ai-dietician/internal/coach"
	"github.com/Vovarama1992/ai-dietician/internal/config"
	"github.com/Vovarama1992/ai-dietician/internal/logger"
	"github.com/Vovarama1992/ai-dietician/internal/session"
	"github.com/Vovarama1992/ai-dietician/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "json")
		boot.Fatal().Err(err).Msg("config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// --- Archive (optional) ---
	archiveRepo := archive.Nop()
	if cfg.DatabaseURL != "" {
		db, err := archive.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db open")
		}
		defer db.Close()

		archiveRepo = mustArchive(db, log)
	}

	// --- Sessions ---
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatal().Err(err).Msg("session secret")
		}
		log.Warn().Msg("SESSION_SECRET not set, sessions will not survive a restart")
	}
	sessions := session.NewManager(secret, int(cfg.SessionTTL.Seconds()))

	pages, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("templates")
	}

	aiClient := ai.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware(log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// --- Advisor module wiring ---
	advisorService := advisor.NewService(aiClient, archiveRepo, log)
	advisorHandler := advisor.NewHandler(
		advisorService,
		pages,
		sessions,
		session.NewStore[advisor.Plan](cfg.SessionCapacity, cfg.SessionTTL),
		log,
	)
	advisor.RegisterRoutes(r, advisorHandler)

	// --- Coach module wiring ---
	coachService := coach.NewService(aiClient, archiveRepo, log)
	coachHandler := coach.NewHandler(
		coachService,
		pages,
		sessions,
		session.NewStore[*coach.Conversation](cfg.SessionCapacity, cfg.SessionTTL),
		session.NewStore[string](cfg.SessionCapacity, cfg.SessionTTL),
		log,
	)
	coach.RegisterRoutes(r, coachHandler)

	// --- health ---
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 3 * time.Minute, // three sequential model calls
	}

	done := make(chan struct{})
	go gracefulShutdown(srv, log, done)

	log.Info().Str("port", cfg.Port).Str("model", cfg.OpenAIModel).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server error")
	}

	<-done
	log.Info().Msg("graceful shutdown complete")
}

func mustArchive(db *sql.DB, log zerolog.Logger) archive.Repo {
	repo := archive.NewRepo(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("db schema")
	}

	log.Info().Msg("plan archive enabled")
	return repo
}

func gracefulShutdown(srv *http.Server, log zerolog.Logger, done chan<- struct{}) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	close(done)
}
