package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sicko7947/members"
	"github.com/sicko7947/members/seed"
	"github.com/sicko7947/members/store"
)

func main() {
	file := flag.String("file", "members.json", "JSON array of members to load")
	flag.Parse()

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

	list, err := seed.LoadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to load seed data")
	}

	ctx := context.Background()
	client, err := store.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create DynamoDB client")
	}

	seeder := seed.NewSeeder(client, cfg.TableName, log.Logger)
	if err := seeder.Reset(ctx, list); err != nil {
		log.Fatal().Err(err).Str("table", cfg.TableName).Msg("Failed to seed table")
	}

	log.Info().Str("table", cfg.TableName).Int("count", len(list)).Msg("Done")
}
