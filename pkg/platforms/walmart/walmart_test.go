package walmart

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stylehunt/pkg/config"
	"stylehunt/pkg/models"
)

const searchFixture = `{
  "query": "denim jacket",
  "totalResults": 310,
  "items": [
    {
      "itemId": 55123901,
      "name": "Wrangler Denim Trucker Jacket",
      "shortDescription": "Classic trucker silhouette",
      "salePrice": 34.97,
      "msrp": 49.99,
      "brandName": "Wrangler",
      "categoryPath": "Clothing/Men/Jackets",
      "thumbnailImage": "https://i5.walmartimages.com/jacket.jpg",
      "productUrl": "https://www.walmart.com/ip/55123901",
      "customerRating": "4.4",
      "numReviews": 812,
      "standardShipRate": 5.99,
      "freeShippingOver35Dollars": true,
      "sellerInfo": "Walmart.com"
    },
    {
      "itemId": 55123902,
      "name": "Nike Windbreaker",
      "salePrice": 58.00
    }
  ]
}`

func TestSearchNormalizesItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("numItems"); got != "10" {
			t.Errorf("expected numItems 10, got %q", got)
		}
		fmt.Fprint(w, searchFixture)
	}))
	defer ts.Close()

	a := NewAdapter(config.WalmartConfig{APIKey: "real-key"})
	a.BaseURL = ts.URL

	res := a.Search(context.Background(), "denim jacket", "", 10)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.TotalResults != 310 {
		t.Errorf("expected upstream total 310, got %d", res.TotalResults)
	}
	if len(res.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(res.Products))
	}

	p := res.Products[0]
	if p.ID != "55123901" {
		t.Errorf("wrong id: %s", p.ID)
	}
	if p.Price != 34.97 || p.OriginalPrice != 49.99 {
		t.Errorf("prices wrong: %f / %f", p.Price, p.OriginalPrice)
	}
	if p.Brand != "Wrangler" {
		t.Errorf("vendor brand should win, got %q", p.Brand)
	}
	if p.Category != "Jackets" {
		t.Errorf("expected category path leaf, got %q", p.Category)
	}
	if p.Rating != 4.4 || p.ReviewCount != 812 {
		t.Errorf("rating wrong: %f (%d)", p.Rating, p.ReviewCount)
	}
	if p.Shipping == nil || !p.Shipping.Free || p.Shipping.Cost != 5.99 {
		t.Errorf("shipping wrong: %+v", p.Shipping)
	}

	// Brand inferred from the title when the vendor omits it.
	if res.Products[1].Brand != "Nike" {
		t.Errorf("expected inferred brand Nike, got %q", res.Products[1].Brand)
	}
}

func TestSearchClampsPageSize(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("numItems"); got != "25" {
			t.Errorf("expected clamp to 25, got %q", got)
		}
		fmt.Fprint(w, `{"items": []}`)
	}))
	defer ts.Close()

	a := NewAdapter(config.WalmartConfig{APIKey: "real-key"})
	a.BaseURL = ts.URL

	res := a.Search(context.Background(), "jacket", "", 200)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if len(res.Products) != 0 {
		t.Errorf("expected empty product list, got %d", len(res.Products))
	}
}

func TestSearchMalformedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>maintenance</html>`)
	}))
	defer ts.Close()

	a := NewAdapter(config.WalmartConfig{APIKey: "real-key"})
	a.BaseURL = ts.URL

	if res := a.Search(context.Background(), "jacket", "", 5); res.Success {
		t.Error("expected failure on unparseable payload")
	}
}

func TestSearchNeverPanicsOnTransportFailure(t *testing.T) {
	ts := httptest.NewServer(nil)
	ts.Close()

	a := NewAdapter(config.WalmartConfig{APIKey: "real-key"})
	a.BaseURL = ts.URL

	res := a.Search(context.Background(), "jacket", "", 5)
	if res.Success || res.Error == "" {
		t.Errorf("expected failure response, got %+v", res)
	}
}

func TestNewSelectsSampleWhenUnconfigured(t *testing.T) {
	adapter := New(config.WalmartConfig{APIKey: "your_walmart_key_here"}, true)
	res := adapter.Search(context.Background(), "jacket", "", 2)
	if !res.Success {
		t.Fatalf("sample adapter must succeed, got %q", res.Error)
	}
	if res.Products[0].Platform != models.PlatformWalmart {
		t.Errorf("sample products tagged %s, want walmart", res.Products[0].Platform)
	}
}
