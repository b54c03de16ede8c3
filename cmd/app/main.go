package main

import (
	"mytodos/config"
	"mytodos/di"
	_ "mytodos/docs"
	"mytodos/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title MyTodos API
// @version 1.0
// @description Minimal todo list service backed by MongoDB.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http, cleanup, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize service")
	}

	defer cleanup()

	if err := http.Serve(); err != nil {
		logger.ErrorWithStack(err)
		log.Error().Err(err).Msg("HTTP server stopped unexpectedly")
	}
}
