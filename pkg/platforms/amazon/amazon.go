// Package amazon adapts the Product Advertising API 5 SearchItems operation
// to the common search contract. PA-API requests are AWS SigV4 signed; the
// signer lives in sign.go.
package amazon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stylehunt/pkg/config"
	"stylehunt/pkg/models"
	"stylehunt/pkg/platforms"
	"stylehunt/pkg/platforms/sample"
	"stylehunt/pkg/search"
)

const (
	apiHost   = "webservices.amazon.com"
	apiRegion = "us-east-1"
	apiPath   = "/paapi5/searchitems"

	// SearchItems returns at most ten items per page.
	maxPageSize = 10
)

var searchIndexes = map[string]string{
	"clothing":    "Apparel",
	"shoes":       "Shoes",
	"accessories": "Apparel",
	"jewelry":     "Jewelry",
	"watches":     "Watches",
	"bags":        "Luggage",
}

type Adapter struct {
	cfg    config.AmazonConfig
	client *http.Client

	// BaseURL defaults to the real PA-API host; tests point it elsewhere.
	BaseURL string
}

// New selects the live adapter when live search is enabled and the full
// credential set (access key, secret, partner tag) is configured.
func New(cfg config.AmazonConfig, liveEnabled bool) search.Adapter {
	if !liveEnabled || !cfg.Configured() {
		return sample.New(models.PlatformAmazon)
	}
	return NewAdapter(cfg)
}

func NewAdapter(cfg config.AmazonConfig) *Adapter {
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: 15 * time.Second},
		BaseURL: "https://" + apiHost,
	}
}

func (a *Adapter) Platform() models.Platform {
	return models.PlatformAmazon
}

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	SearchIndex string   `json:"SearchIndex,omitempty"`
	ItemCount   int      `json:"ItemCount"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

func (a *Adapter) Search(ctx context.Context, query, category string, maxResults int) models.SearchResponse {
	start := time.Now()
	fail := func(msg string) models.SearchResponse {
		return models.SearchResponse{
			Platform:     models.PlatformAmazon.String(),
			Products:     []models.ExternalProduct{},
			SearchTimeMs: time.Since(start).Milliseconds(),
			Error:        msg,
		}
	}

	if !a.cfg.Configured() {
		return fail("Amazon PA-API credentials are missing or placeholders")
	}

	reqBody := searchItemsRequest{
		Keywords:    query,
		SearchIndex: searchIndexes[strings.ToLower(category)],
		ItemCount:   platforms.Clamp(maxResults, maxPageSize),
		PartnerTag:  a.cfg.PartnerTag,
		PartnerType: "Associates",
		Marketplace: "www.amazon.com",
		Resources: []string{
			"ItemInfo.Title",
			"ItemInfo.ByLineInfo",
			"ItemInfo.Features",
			"Images.Primary.Large",
			"Offers.Listings.Price",
			"Offers.Listings.SavingBasis",
			"Offers.Listings.DeliveryInfo.IsFreeShippingEligible",
			"CustomerReviews.StarRating",
			"CustomerReviews.Count",
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fail(fmt.Sprintf("failed to encode request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+apiPath, bytes.NewReader(payload))
	if err != nil {
		return fail(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("X-Amz-Target", "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems")
	signRequest(req, payload, a.cfg.AccessKey, a.cfg.SecretKey, apiRegion, time.Now().UTC())

	resp, err := a.client.Do(req)
	if err != nil {
		return fail(fmt.Sprintf("Amazon request failed: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Sprintf("failed to read Amazon response: %v", err))
	}
	if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(string(body), "TooManyRequests") {
		return fail("Amazon rate limit exceeded upstream")
	}
	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Sprintf("Amazon returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var parsed searchItemsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fail(fmt.Sprintf("failed to parse Amazon response: %v", err))
	}

	products := make([]models.ExternalProduct, 0, len(parsed.SearchResult.Items))
	for _, it := range parsed.SearchResult.Items {
		products = append(products, it.normalize())
	}

	total := parsed.SearchResult.TotalResultCount
	if total == 0 {
		total = len(products)
	}

	return models.SearchResponse{
		Success:      true,
		Platform:     models.PlatformAmazon.String(),
		Products:     products,
		TotalResults: total,
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
}
