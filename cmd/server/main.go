package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/fernandosattini/iphoneapp/internal/config"
	"github.com/fernandosattini/iphoneapp/internal/db"
	"github.com/fernandosattini/iphoneapp/internal/logger"
	"github.com/fernandosattini/iphoneapp/internal/server"
)

var migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("logger setup failed")
	}

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if *migrateOnlyFlag {
		log.Info().Msg("migrations completed; exiting as requested")
		return
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(conn)}
	go func() {
		log.Info().Str("env", cfg.Env).Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
