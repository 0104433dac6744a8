package cache

import (
	"path/filepath"
	"testing"
	"time"

	"stylehunt/pkg/models"
)

func testResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Success:      true,
		Platform:     "ebay",
		TotalResults: 2,
		Products: []models.ExternalProduct{
			{ID: "1", Title: "Denim Jacket", Price: 42.50, Currency: "USD", Platform: models.PlatformEbay},
			{ID: "2", Title: "Wool Coat", Price: 89.00, Currency: "USD", Platform: models.PlatformEbay},
		},
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer store.Close()

	if _, ok := store.Get("ebay", "denim jacket||10"); ok {
		t.Fatal("empty cache should miss")
	}

	store.Set("ebay", "denim jacket||10", testResponse())

	got, ok := store.Get("ebay", "denim jacket||10")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Products) != 2 || got.Products[0].Title != "Denim Jacket" {
		t.Errorf("cached response mangled: %+v", got)
	}

	// Different platform, same key: separate entry.
	if _, ok := store.Get("etsy", "denim jacket||10"); ok {
		t.Error("platforms must not share entries")
	}
}

func TestSQLiteOverwrite(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"), time.Hour)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer store.Close()

	store.Set("ebay", "k", testResponse())

	updated := testResponse()
	updated.Products = updated.Products[:1]
	store.Set("ebay", "k", updated)

	got, ok := store.Get("ebay", "k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.Products) != 1 {
		t.Errorf("expected overwritten entry with 1 product, got %d", len(got.Products))
	}
}

func TestSQLiteTTLExpiry(t *testing.T) {
	store, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"), time.Nanosecond)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer store.Close()

	store.Set("ebay", "k", testResponse())
	time.Sleep(time.Millisecond)

	if _, ok := store.Get("ebay", "k"); ok {
		t.Error("expired entry must miss")
	}
}
