// Package export renders a user's transactions as CSV and uploads the
// snapshot to Cloud Storage.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/storage"

	"github.com/kent242/moneychat/internal/domain"
)

var csvHeader = []string{
	"id", "date", "description", "amount", "type", "category",
	"merchant", "ai_categorized", "ai_confidence",
}

// SnapshotCSV renders transactions as CSV, one row per transaction,
// in the order given.
func SnapshotCSV(txs []domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: writing header: %w", err)
	}
	for _, tx := range txs {
		row := []string{
			tx.ID,
			tx.OccurredAt.Format(time.RFC3339),
			tx.Description,
			strconv.FormatInt(tx.Amount, 10),
			string(tx.Kind),
			tx.Category,
			tx.Merchant,
			strconv.FormatBool(tx.AICategorized),
			strconv.FormatFloat(tx.AIConfidence, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: writing row %s: %w", tx.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flushing: %w", err)
	}
	return buf.Bytes(), nil
}

// ObjectName builds the object path for one user's snapshot, dated so
// repeated exports never overwrite each other.
func ObjectName(userID string, at time.Time) string {
	return fmt.Sprintf("exports/%s/%s-transactions.csv", userID, at.Format("2006-01-02T15-04-05"))
}

// Upload writes the snapshot bytes to gs://bucket/objectName. It
// assumes application default credentials are configured.
func Upload(ctx context.Context, bucket, objectName string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("export: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "text/csv"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("export: writing object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export: finalize upload: %w", err)
	}
	return nil
}
