package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CraftVault_Go/internal/domain"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{
		BaseURL:     srv.URL,
		IconBaseURL: "https://icons.example.com",
		Timeout:     5 * time.Second,
	})
	return client, srv
}

func TestSearchItems(t *testing.T) {
	var gotQuery, gotSheets string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotSheets = r.URL.Query().Get("sheets")
		w.Write([]byte(`{"results": [
			{"row_id": 5510, "fields": {
				"Name": "Iron Ingot",
				"IconHD": {"path_hr1": "ui/icon/020000/020802_hr1.tex"},
				"LevelItem": {"value": 13}
			}},
			{"row_id": 0, "fields": {"Name": "phantom row"}}
		]}`))
	}))
	defer srv.Close()

	results, err := client.SearchItems(context.Background(), "iron ingot", 10)
	require.NoError(t, err)
	require.Len(t, results, 1, "zero row_id entries are dropped")

	assert.Equal(t, "iron ingot", gotQuery)
	assert.Equal(t, "Item", gotSheets)
	assert.Equal(t, 5510, results[0].ID)
	assert.Equal(t, "Iron Ingot", results[0].Name)
	assert.Equal(t, 13, results[0].Tier)
	assert.Equal(t, "https://icons.example.com/ui/icon/020000/020802_hr1.tex", results[0].IconURL)
}

func TestSearchItemsShortQuerySkipsRequest(t *testing.T) {
	calls := 0
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	results, err := client.SearchItems(context.Background(), "x", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, calls)
}

func TestGetItem(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sheet/Item/5510", r.URL.Path)
		w.Write([]byte(`{"row_id": 5510, "fields": {
			"Name": "Iron Ingot",
			"Icon": {"path": "ui/icon/020000/020802.tex"},
			"LevelItem": {"value": 13}
		}}`))
	}))
	defer srv.Close()

	item, err := client.GetItem(context.Background(), 5510)
	require.NoError(t, err)
	assert.Equal(t, 5510, item.ID)
	assert.Equal(t, "Iron Ingot", item.Name)
	assert.Equal(t, 13, item.Tier)
	assert.Equal(t, "https://icons.example.com/ui/icon/020000/020802.tex", item.IconURL)
}

func TestGetItemNotFound(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := client.GetItem(context.Background(), 99999999)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.False(t, domain.IsTransient(err))
}

func TestGetRecipeFor(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			require.Equal(t, "ItemResult=5510", r.URL.Query().Get("query"))
			require.Equal(t, "Recipe", r.URL.Query().Get("sheets"))
			w.Write([]byte(`{"results": [{"row_id": 13, "fields": {
				"AmountResult": 3,
				"CraftType": {"fields": {"Name": "Blacksmith"}}
			}}]}`))
		case "/sheet/Recipe/13":
			w.Write([]byte(`{"row_id": 13, "fields": {
				"Ingredient": [
					{"row_id": 5111, "fields": {"Name": "Iron Ore"}},
					{"row_id": 0, "fields": {}},
					0,
					{"row_id": 7, "fields": {"Name": "Fire Crystal"}}
				],
				"AmountIngredient": [3, 1, 1, 2]
			}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	recipe, err := client.GetRecipeFor(context.Background(), 5510)
	require.NoError(t, err)

	assert.Equal(t, 13, recipe.ID)
	assert.Equal(t, 5510, recipe.ResultItemID)
	assert.Equal(t, 3, recipe.Yield)
	assert.Equal(t, "Blacksmith", recipe.CraftCategory)
	require.Len(t, recipe.Ingredients, 2, "empty slots and non-object entries are dropped")
	assert.Equal(t, domain.Ingredient{ItemID: 5111, Name: "Iron Ore", Amount: 3}, recipe.Ingredients[0])
	assert.Equal(t, domain.Ingredient{ItemID: 7, Name: "Fire Crystal", Amount: 2}, recipe.Ingredients[1])
}

func TestGetRecipeForNone(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	_, err := client.GetRecipeFor(context.Background(), 5111)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestServerErrorIsTransientAndRetried(t *testing.T) {
	calls := 0
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.GetItem(context.Background(), 5510)
	require.Error(t, err)
	assert.True(t, domain.IsTransient(err))
	assert.NotErrorIs(t, err, domain.ErrItemNotFound)
	assert.Equal(t, maxRetryAttempts, calls)
}

func TestGetGatheringInfo(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("sheets") {
		case "GatheringItem":
			w.Write([]byte(`{"results": [{"row_id": 401}]}`))
		case "GatheringPointBase":
			w.Write([]byte(`{"results": [{"row_id": 30, "fields": {
				"GatheringType": {"fields": {"Name": "Quarrying"}}
			}}]}`))
		case "GatheringPoint":
			w.Write([]byte(`{"results": [{"fields": {
				"PlaceName": {"fields": {"Name": "Western Thanalan"}}
			}}]}`))
		default:
			t.Fatalf("unexpected sheets %q", r.URL.Query().Get("sheets"))
		}
	}))
	defer srv.Close()

	info, err := client.GetGatheringInfo(context.Background(), 5111)
	require.NoError(t, err)
	assert.Equal(t, MethodMining, info.Method)
	assert.Equal(t, "Western Thanalan", info.Zone)
}

func TestGetGatheringInfoNotGatherable(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	_, err := client.GetGatheringInfo(context.Background(), 5510)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetVendorInfoGilShop(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Query().Get("sheets") == "GilShopItem":
			w.Write([]byte(`{"results": [{"row_id": 262919}]}`))
		case r.URL.Path == "/sheet/GilShop/262919":
			w.Write([]byte(`{"fields": {"Name": "Material Supplier"}}`))
		case r.URL.Query().Get("sheets") == "ENpcBase":
			w.Write([]byte(`{"results": [{"row_id": 1001}]}`))
		case r.URL.Query().Get("sheets") == "Level":
			w.Write([]byte(`{"results": [{"fields": {"Territory": {"fields": {
				"PlaceName": {"fields": {"Name": "Limsa Lominsa"}}
			}}}}]}`))
		default:
			t.Fatalf("unexpected request %s", r.URL.String())
		}
	}))
	defer srv.Close()

	info, err := client.GetVendorInfo(context.Background(), 5510)
	require.NoError(t, err)
	assert.Equal(t, "Material Supplier", info.Shop)
	assert.Equal(t, "Limsa Lominsa (Material Supplier)", info.Location)
}

func TestGetVendorInfoSpecialShop(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("sheets") {
		case "GilShopItem":
			w.Write([]byte(`{"results": []}`))
		case "SpecialShop":
			w.Write([]byte(`{"results": [{"row_id": 7, "fields": {"Name": "Scrip Exchange"}}]}`))
		default:
			t.Fatalf("unexpected sheets %q", r.URL.Query().Get("sheets"))
		}
	}))
	defer srv.Close()

	info, err := client.GetVendorInfo(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, "Scrip Exchange", info.Shop)
	assert.Equal(t, "Scrip Exchange", info.Location)
}

func TestGetVendorInfoNotSold(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	_, err := client.GetVendorInfo(context.Background(), 5111)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetchIconResolvesRelativePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ui/icon/020000/020802_hr1.tex", r.URL.Path)
		w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: "http://unused.invalid", IconBaseURL: srv.URL})

	data, err := client.FetchIcon(context.Background(), "ui/icon/020000/020802_hr1.tex")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
}
