package amazon

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stylehunt/pkg/config"
	"stylehunt/pkg/models"
)

const searchItemsFixture = `{
  "SearchResult": {
    "TotalResultCount": 96,
    "Items": [
      {
        "ASIN": "B09ABCD123",
        "DetailPageURL": "https://www.amazon.com/dp/B09ABCD123",
        "ItemInfo": {
          "Title": {"DisplayValue": "Adidas Essentials Hoodie"},
          "ByLineInfo": {"Brand": {"DisplayValue": "Adidas"}},
          "Features": {"DisplayValues": ["Cotton blend fleece"]}
        },
        "Images": {"Primary": {"Large": {"URL": "https://m.media-amazon.com/hoodie.jpg"}}},
        "Offers": {
          "Listings": [
            {
              "Price": {"Amount": 39.99, "Currency": "USD"},
              "SavingBasis": {"Amount": 55.00},
              "DeliveryInfo": {"IsFreeShippingEligible": true}
            }
          ]
        },
        "CustomerReviews": {"StarRating": {"Value": 4.6}, "Count": 12043}
      }
    ]
  }
}`

func testConfig() config.AmazonConfig {
	return config.AmazonConfig{AccessKey: "AKIAEXAMPLE", SecretKey: "secret", PartnerTag: "stylehunt-20"}
}

func TestSearchNormalizesItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Amz-Target"); !strings.HasSuffix(got, "SearchItems") {
			t.Errorf("wrong target header: %q", got)
		}
		if auth := r.Header.Get("Authorization"); !strings.HasPrefix(auth, "AWS4-HMAC-SHA256") {
			t.Errorf("request not signed: %q", auth)
		}
		fmt.Fprint(w, searchItemsFixture)
	}))
	defer ts.Close()

	a := NewAdapter(testConfig())
	a.BaseURL = ts.URL

	res := a.Search(context.Background(), "hoodie", "clothing", 5)
	if !res.Success {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.TotalResults != 96 {
		t.Errorf("expected upstream total 96, got %d", res.TotalResults)
	}

	p := res.Products[0]
	if p.ID != "B09ABCD123" {
		t.Errorf("wrong id: %s", p.ID)
	}
	if p.Price != 39.99 || p.OriginalPrice != 55.00 {
		t.Errorf("prices wrong: %f / %f", p.Price, p.OriginalPrice)
	}
	if p.Brand != "Adidas" {
		t.Errorf("brand wrong: %q", p.Brand)
	}
	if p.Rating != 4.6 || p.ReviewCount != 12043 {
		t.Errorf("reviews wrong: %f (%d)", p.Rating, p.ReviewCount)
	}
	if p.Shipping == nil || !p.Shipping.Free {
		t.Errorf("expected free shipping, got %+v", p.Shipping)
	}
	if p.Description != "Cotton blend fleece" {
		t.Errorf("first feature should be the description, got %q", p.Description)
	}
}

func TestSearchIncompleteCredentialsShortCircuit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made with partial credentials")
	}))
	defer ts.Close()

	a := NewAdapter(config.AmazonConfig{AccessKey: "AKIAEXAMPLE"})
	a.BaseURL = ts.URL

	if res := a.Search(context.Background(), "hoodie", "", 5); res.Success {
		t.Error("expected failure with partial credentials")
	}
}

func TestSearchUpstreamThrottle(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"__type": "com.amazon.paapi5#TooManyRequestsException"}`)
	}))
	defer ts.Close()

	a := NewAdapter(testConfig())
	a.BaseURL = ts.URL

	res := a.Search(context.Background(), "hoodie", "", 5)
	if res.Success {
		t.Fatal("expected failure on throttle")
	}
	if !strings.Contains(res.Error, "rate limit") {
		t.Errorf("expected rate limit wording, got %q", res.Error)
	}
}

func TestNewSelectsSampleWhenLiveDisabled(t *testing.T) {
	adapter := New(testConfig(), false)
	res := adapter.Search(context.Background(), "hoodie", "", 4)
	if !res.Success || len(res.Products) != 4 {
		t.Fatalf("sample adapter should return 4 products, got %d (error %q)", len(res.Products), res.Error)
	}
	if res.Products[0].Platform != models.PlatformAmazon {
		t.Errorf("sample products tagged %s, want amazon", res.Products[0].Platform)
	}
}
