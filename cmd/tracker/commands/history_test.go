package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryMockRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("COLLECTOR_MODE", "mock")
	t.Setenv("STEAM_COOKIE", "")

	out := filepath.Join(dir, "history.csv")
	records := filepath.Join(dir, "data", "trades.json")

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{
		"history",
		"--config", filepath.Join(dir, "tracker.json5"),
		"--delay", "0",
		"-o", out,
		"--records", records,
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "name", rows[0][0])
	require.Len(t, rows, 5)

	_, err = os.Stat(records)
	require.NoError(t, err)
	require.Contains(t, stderr.String(), "Net Profit/Loss: $-74.90")
}
