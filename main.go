package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/debemdeboas/palette-drafts/internal/archive"
	"github.com/debemdeboas/palette-drafts/internal/config"
	"github.com/debemdeboas/palette-drafts/internal/logger"
	"github.com/debemdeboas/palette-drafts/internal/server"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	log := logger.New("info")
	config.SetLogger(log)

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file loaded")
	}

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	cfg := config.AppConfig

	log = logger.New(cfg.Logging.Level)
	config.SetLogger(log)
	archive.SetLogger(log)

	srv := server.New(server.NewDraftFile(cfg.Drafts.File), cfg.Drafts.BackupDir, log)

	if cfg.Features.S3Archive.Enabled {
		archiver, err := archive.NewS3Archiver(
			os.Getenv("S3_ACCESS_KEY_ID"),
			os.Getenv("S3_ACCESS_KEY_SECRET"),
			cfg.Features.S3Archive.Endpoint,
			cfg.Features.S3Archive.Bucket,
			cfg.Features.S3Archive.Prefix,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Error initializing S3 archiver")
		}
		srv.SetArchiver(archiver)
	}

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux, cfg)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Info().Str("addr", addr).Msg("Draft service listening")
	log.Fatal().Err(http.ListenAndServe(addr, server.SecureHeaders(mux))).Msg("Server stopped")
}
