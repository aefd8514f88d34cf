package main

import (
	"github.com/Naman-Bagoria17/shortify/internal/app"
	"github.com/Naman-Bagoria17/shortify/internal/config"
	"github.com/Naman-Bagoria17/shortify/internal/logger"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.NewConfig()
	logger.InitLogger(cfg.Environment)

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error building application")
	}

	if err := application.Run(); err != nil {
		log.Fatal().Err(err).Msg("Error running application")
	}
}
