package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/ksred/folio-api/internal/database"
	"github.com/ksred/folio-api/internal/importer"
)

// init configures pretty logging with timestamps for the import run
func init() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// main places orders in bulk from a CSV file against the configured database
// Usage: bulkorder <csv-file>
func main() {
	if len(os.Args) != 2 {
		zlog.Fatal().Msg("usage: bulkorder <csv-file>")
	}
	csvPath := os.Args[1]

	db, err := database.NewDatabase()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	result, err := importer.New(db).ImportFile(csvPath)
	if err != nil {
		zlog.Fatal().Err(err).Str("file", csvPath).Msg("Bulk order import failed")
	}

	zlog.Info().
		Str("file", csvPath).
		Int("placed", result.Placed).
		Int("skipped", result.Skipped).
		Msg("Successfully placed bulk orders")
}
