package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sicko7947/members"
	"github.com/sicko7947/members/apigw"
	"github.com/sicko7947/members/handler"
	"github.com/sicko7947/members/store"
)

// One binary serves every operation; MEMBERS_OPERATION picks which one this
// function instance handles. The store is built once per process and reused
// across invocations.
func main() {
	_ = godotenv.Load()

	serverCfg, err := members.LoadServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load server config")
	}

	log.Logger = members.NewLogger(serverCfg.LogLevel, "json")

	cfg, err := members.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load backend config")
	}

	memberStore, err := store.Open(context.Background(), serverCfg.Store, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open member store")
	}

	h := handler.NewHandler(memberStore, handler.WithLogger(log.Logger))

	op, err := h.Operation(serverCfg.Operation)
	if err != nil {
		log.Fatal().Err(err).Str("operation", serverCfg.Operation).Msg("Failed to select operation")
	}

	lambda.Start(apigw.Adapt(serverCfg.Operation, op, log.Logger))
}
