// Command export snapshots one user's transactions as CSV and either
// writes the file locally or uploads it to the export bucket.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/kent242/moneychat/internal/config"
	"github.com/kent242/moneychat/internal/export"
	"github.com/kent242/moneychat/internal/logger"
	storebq "github.com/kent242/moneychat/internal/store/bigquery"
)

func main() {
	cfg := config.Load()

	var (
		userID = flag.String("user", "", "user ID to export (required)")
		bucket = flag.String("bucket", cfg.ExportBucket, "GCS bucket for the snapshot")
		out    = flag.String("out", "", "write the CSV to a local file instead of GCS")
	)
	flag.Parse()

	log := logger.New("moneychat-export")

	if *userID == "" {
		log.Fatal().Msg("-user is required")
	}
	if *out == "" && *bucket == "" {
		log.Fatal().Msg("either -bucket or -out must be set")
	}

	ctx := context.Background()
	bq, err := storebq.NewStore(ctx, cfg.BigQuery)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create store")
	}
	defer bq.Close()

	txs, err := bq.ListByUser(ctx, *userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load transactions")
	}

	data, err := export.SnapshotCSV(txs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render CSV")
	}

	if *out != "" {
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", *out).Msg("Failed to write file")
		}
		log.Info().Str("path", *out).Int("transactions", len(txs)).Msg("Snapshot written")
		return
	}

	objectName := export.ObjectName(*userID, time.Now())
	if err := export.Upload(ctx, *bucket, objectName, data); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}
	log.Info().
		Str("bucket", *bucket).
		Str("object", objectName).
		Int("transactions", len(txs)).
		Msg("Snapshot uploaded")
}
