package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/you/learnsphere/internal/app"
	"github.com/you/learnsphere/internal/config"
)

func main() {
	// Optional; secrets may come from the environment directly.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}
	if err := app.Run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("app")
	}
}
