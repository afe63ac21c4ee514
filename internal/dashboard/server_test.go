package dashboard

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/qepting91/cs2-market-tracker/internal/domain"
	"github.com/qepting91/cs2-market-tracker/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestHandlerRendersRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.json")
	log := &storage.RecordLog{FilePath: path}
	require.NoError(t, log.Write([]domain.TradeRecord{
		{Kind: domain.KindMatched, Name: "AK-47 | Redline", AdjustedProfit: decimal.RequireFromString("3")},
		{Kind: domain.KindBoughtOnly, Name: "AWP | Asiimov", Direction: domain.DirectionBought},
	}))

	rec := httptest.NewRecorder()
	Handler(path).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "Profit per Trade")
	require.Contains(t, body, "AK-47 | Redline")
	require.Contains(t, body, "Bought (Not Sold)")
}

func TestLoadDataSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.json")
	require.NoError(t, os.WriteFile(path, []byte("{\"kind\":\"matched\",\"name\":\"A\"}\nnot json\n{\"kind\":\"sold_only\",\"name\":\"B\"}\n"), 0o600))

	records, err := loadData(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "B", records[1].Name)

	records, err = loadData(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestStartServerReturnsWhenPortBusy(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	port := strconv.Itoa(ln.Addr().(*net.TCPAddr).Port)

	before := runtime.NumGoroutine()
	err = StartServer(context.Background(), filepath.Join(t.TempDir(), "trades.json"), port)
	require.Error(t, err)

	// the shutdown watcher exits with the server
	require.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, filepath.Join(t.TempDir(), "trades.json"), "0")
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
