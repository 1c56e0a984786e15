// Package application assembles the API process: configuration, storage,
// services, HTTP transport and graceful shutdown.
package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Muratozbk/support-desk/internal/auth"
	"github.com/Muratozbk/support-desk/internal/config"
	"github.com/Muratozbk/support-desk/internal/database"
	"github.com/Muratozbk/support-desk/internal/handler"
	"github.com/Muratozbk/support-desk/internal/kafka"
	"github.com/Muratozbk/support-desk/internal/router"
	"github.com/Muratozbk/support-desk/internal/searchindex"
	"github.com/Muratozbk/support-desk/internal/service"
)

// API is the api-mode application.
type API struct {
	cfg      *config.Config
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI validates config, migrates the database and wires the HTTP server.
func NewAPI(cfg *config.Config) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	configureLogging(cfg.LogLevel)

	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	passwords := auth.NewPasswordService()

	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicTicket)
	search := searchindex.NewClient(cfg.SearchServiceURL)

	userSvc := service.NewUserService(db, passwords, tokens)
	ticketSvc := service.NewTicketService(db)
	noteSvc := service.NewNoteService(db)

	h := router.New(router.Deps{
		Users:              handler.NewUserHandler(userSvc),
		Tickets:            handler.NewTicketHandler(ticketSvc, producer, search),
		Notes:              handler.NewNoteHandler(noteSvc),
		Tokens:             tokens,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, httpSrv: httpSrv, producer: producer}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	log.Info().Str("addr", a.httpSrv.Addr).Msg("HTTP server listening")
	log.Info().Str("url", base+"/swagger").Msg("swagger UI")
	log.Info().Str("url", base+"/health").Msg("health")
	log.Info().Str("url", base+"/api/v1/").Msg("API v1")

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		log.Error().Err(err).Msg("kafka close")
	}
	return nil
}

func configureLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
