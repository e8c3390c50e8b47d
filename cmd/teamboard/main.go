package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/teamboard-dev/teamboard/db"
	"github.com/teamboard-dev/teamboard/internal/auth"
	"github.com/teamboard-dev/teamboard/internal/router"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found, relying on environment")
	}

	auth.InitSecret()

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		log.Info().Msg("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
