package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveSteamID(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{
			name: "inventory link",
			body: `<html><body><a class="inventory_link" href="https://steamcommunity.com/profiles/76561198000000001/inventory/">Inventory</a></body></html>`,
		},
		{
			name: "page variable",
			body: `<html><script>g_steamID = "76561198000000001";</script></html>`,
		},
		{
			name: "script steamid",
			body: `<html><script type="text/javascript">var data = {"steamid":"76561198000000001"};</script></html>`,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte(test.body))
			}))
			defer srv.Close()

			client := NewInventoryClient(InventoryOptions{BaseURL: srv.URL})
			id, err := client.ResolveSteamID(context.Background(), srv.URL+"/id/someone")
			require.NoError(t, err)
			require.Equal(t, "76561198000000001", id)
		})
	}
}

func TestResolveSteamIDPassthrough(t *testing.T) {
	client := NewInventoryClient(InventoryOptions{})
	id, err := client.ResolveSteamID(context.Background(), "76561198000000001")
	require.NoError(t, err)
	require.Equal(t, "76561198000000001", id)
}

func TestFetchInventoryPaginates(t *testing.T) {
	var starts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/inventory/76561198000000001/730/2", r.URL.Path)
		start := r.URL.Query().Get("start_assetid")
		starts = append(starts, start)

		w.Header().Set("Content-Type", "application/json")
		if start == "" {
			fmt.Fprint(w, `{
				"assets": [{"assetid": "1", "classid": "10", "instanceid": "0", "amount": "1"}],
				"descriptions": [{"classid": "10", "instanceid": "0", "name": "AK-47 | Redline", "type": "Rifle", "marketable": 1}],
				"more_items": 1, "last_assetid": "1", "success": 1
			}`)
			return
		}
		fmt.Fprint(w, `{
			"assets": [{"assetid": "2", "classid": "20", "instanceid": "0"}],
			"descriptions": [],
			"success": 1
		}`)
	}))
	defer srv.Close()

	client := NewInventoryClient(InventoryOptions{BaseURL: srv.URL, Delay: time.Millisecond})
	items, err := client.FetchInventory(context.Background(), "76561198000000001")
	require.NoError(t, err)

	require.Equal(t, []string{"", "1"}, starts)
	require.Len(t, items, 2)
	require.Equal(t, "AK-47 | Redline", items[0].Name)
	require.Equal(t, "Rifle", items[0].Type)
	require.Equal(t, "Unknown", items[1].Name)
	require.Equal(t, "1", items[1].Amount)
}

func TestFetchInventoryPrivate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewInventoryClient(InventoryOptions{BaseURL: srv.URL, Delay: time.Millisecond})
	_, err := client.FetchInventory(context.Background(), "76561198000000001")
	require.ErrorIs(t, err, ErrPrivateInventory)
}
