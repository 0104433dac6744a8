package sample

import (
	"context"
	"testing"

	"stylehunt/pkg/models"
)

func TestSearchIsDeterministic(t *testing.T) {
	a := New(models.PlatformEbay)

	first := a.Search(context.Background(), "denim jacket", "", 5)
	second := a.Search(context.Background(), "denim jacket", "", 5)

	if !first.Success || !second.Success {
		t.Fatal("sample search must always succeed")
	}
	if len(first.Products) != 5 {
		t.Fatalf("expected 5 products, got %d", len(first.Products))
	}
	for i := range first.Products {
		a, b := first.Products[i], second.Products[i]
		if a.ID != b.ID || a.Title != b.Title || a.Price != b.Price {
			t.Errorf("product %d differs between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestSearchVariesByQueryAndPlatform(t *testing.T) {
	ebay := New(models.PlatformEbay)
	etsy := New(models.PlatformEtsy)

	jackets := ebay.Search(context.Background(), "denim jacket", "", 5)
	boots := ebay.Search(context.Background(), "boots", "", 5)
	etsyJackets := etsy.Search(context.Background(), "denim jacket", "", 5)

	if jackets.Products[0].Title == boots.Products[0].Title &&
		jackets.Products[0].Price == boots.Products[0].Price {
		t.Error("different queries should yield different catalogs")
	}
	if etsyJackets.Products[0].Platform != models.PlatformEtsy {
		t.Errorf("products tagged %s, want etsy", etsyJackets.Products[0].Platform)
	}
}

func TestSearchProductInvariants(t *testing.T) {
	a := New(models.PlatformWalmart)
	res := a.Search(context.Background(), "silk scarf", "", 20)

	for _, p := range res.Products {
		if p.Price <= 0 {
			t.Errorf("product %s has non-positive price %f", p.ID, p.Price)
		}
		if p.OriginalPrice != 0 && p.OriginalPrice <= p.Price {
			t.Errorf("product %s has original price %f not above price %f", p.ID, p.OriginalPrice, p.Price)
		}
		if p.Currency != "USD" {
			t.Errorf("product %s has currency %q", p.ID, p.Currency)
		}
	}
}

func TestSearchClampsMaxResults(t *testing.T) {
	a := New(models.PlatformEbay)

	if res := a.Search(context.Background(), "hat", "", 100); len(res.Products) != 20 {
		t.Errorf("expected clamp to 20, got %d", len(res.Products))
	}
	if res := a.Search(context.Background(), "hat", "", 0); len(res.Products) != 1 {
		t.Errorf("expected at least 1 product, got %d", len(res.Products))
	}
}
