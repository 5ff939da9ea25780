// Command seed writes the default category taxonomy into the
// configured BigQuery dataset. Run it once per dataset.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/google/uuid"

	"github.com/kent242/moneychat/internal/config"
	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/logger"
	storebq "github.com/kent242/moneychat/internal/store/bigquery"
)

func main() {
	cfg := config.Load()

	var (
		project = flag.String("project", cfg.BigQuery.ProjectID, "BigQuery project ID")
		dataset = flag.String("dataset", cfg.BigQuery.Dataset, "BigQuery dataset")
	)
	flag.Parse()
	cfg.BigQuery.ProjectID = *project
	cfg.BigQuery.Dataset = *dataset

	log := logger.New("moneychat-seed")

	ctx := context.Background()
	bq, err := storebq.NewStore(ctx, cfg.BigQuery)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create store")
	}
	defer bq.Close()

	now := time.Now()
	for _, c := range domain.DefaultCategories() {
		c.ID = uuid.NewString()
		c.CreatedAt = now
		if err := bq.InsertCategory(ctx, c); err != nil {
			log.Fatal().Err(err).Str("category", c.Name).Msg("Failed to insert category")
		}
		log.Info().Str("category", c.Name).Str("type", string(c.Type)).Msg("Category seeded")
	}

	log.Info().Int("count", len(domain.DefaultCategories())).Msg("Seeding complete")
}
