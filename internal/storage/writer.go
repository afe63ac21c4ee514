package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
)

// RecordLog writes trade records as NDJSON, one record per line.
// The dashboard reads the same file back.
type RecordLog struct {
	FilePath string
}

// Write replaces the log with records.
func (l *RecordLog) Write(records []domain.TradeRecord) error {
	if dir := filepath.Dir(l.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create record dir: %w", err)
		}
	}

	f, err := os.OpenFile(l.FilePath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open record log: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encode record %q: %w", rec.Name, err)
		}
	}
	return f.Close()
}
