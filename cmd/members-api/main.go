package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sicko7947/members"
	"github.com/sicko7947/members/handler"
	"github.com/sicko7947/members/server"
	"github.com/sicko7947/members/store"
)

func main() {
	_ = godotenv.Load()

	serverCfg, err := members.LoadServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load server config")
	}

	log.Logger = members.NewLogger(serverCfg.LogLevel, serverCfg.LogFormat)

	cfg, err := members.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load backend config")
	}

	memberStore, err := store.Open(context.Background(), serverCfg.Store, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open member store")
	}

	h := handler.NewHandler(memberStore, handler.WithLogger(log.Logger))
	srv := server.New(h, server.WithLogger(log.Logger))

	go func() {
		log.Info().
			Str("address", serverCfg.Addr).
			Str("store", serverCfg.Store).
			Str("table", cfg.TableName).
			Msg("Starting HTTP server")
		if err := srv.Listen(serverCfg.Addr); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if err := srv.Shutdown(serverCfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
