package main

import (
	"context"
	"mytodos/config"
	"mytodos/helper"
	"mytodos/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Collection action (create/drop/count) is required")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	ctx := context.Background()

	switch os.Args[1] {
	case helper.ActionCreate:
		if err := helper.Create(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to create collection")
		}
	case helper.ActionDrop:
		if err := helper.Drop(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to drop collection")
		}
	case helper.ActionCount:
		if err := helper.Count(ctx, cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to count documents")
		}
	default:
		log.Fatal().Msg("Invalid action. Use 'create', 'drop' or 'count'")
	}
}
