// Package etsy adapts the Etsy Open API v3 active-listings search to the
// common search contract. Etsy ships prices in minor units with an explicit
// divisor, so normalization must divide.
package etsy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stylehunt/pkg/config"
	"stylehunt/pkg/models"
	"stylehunt/pkg/platforms"
	"stylehunt/pkg/platforms/sample"
	"stylehunt/pkg/search"
)

const (
	listingsURL = "https://openapi.etsy.com/v3/application/listings/active"

	// Etsy caps limit at 100 per request.
	maxPageSize = 100
)

// taxonomyIDs maps our categories onto Etsy's taxonomy.
var taxonomyIDs = map[string]string{
	"clothing":    "374",
	"shoes":       "1429",
	"accessories": "1",
	"jewelry":     "1179",
	"bags":        "132",
}

type Adapter struct {
	cfg    config.EtsyConfig
	client *http.Client

	BaseURL string
}

// New selects the live adapter when live search is enabled and an API key is
// configured, the sample adapter otherwise.
func New(cfg config.EtsyConfig, liveEnabled bool) search.Adapter {
	if !liveEnabled || !cfg.Configured() {
		return sample.New(models.PlatformEtsy)
	}
	return NewAdapter(cfg)
}

func NewAdapter(cfg config.EtsyConfig) *Adapter {
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: 15 * time.Second},
		BaseURL: listingsURL,
	}
}

func (a *Adapter) Platform() models.Platform {
	return models.PlatformEtsy
}

func (a *Adapter) Search(ctx context.Context, query, category string, maxResults int) models.SearchResponse {
	start := time.Now()
	fail := func(msg string) models.SearchResponse {
		return models.SearchResponse{
			Platform:     models.PlatformEtsy.String(),
			Products:     []models.ExternalProduct{},
			SearchTimeMs: time.Since(start).Milliseconds(),
			Error:        msg,
		}
	}

	if !a.cfg.Configured() {
		return fail("Etsy API key is missing or a placeholder")
	}

	params := url.Values{}
	params.Set("keywords", query)
	params.Set("limit", strconv.Itoa(platforms.Clamp(maxResults, maxPageSize)))
	if id, ok := taxonomyIDs[strings.ToLower(category)]; ok {
		params.Set("taxonomy_id", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fail(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("x-api-key", a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return fail(fmt.Sprintf("Etsy request failed: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Sprintf("failed to read Etsy response: %v", err))
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fail("Etsy rate limit exceeded upstream")
	}
	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Sprintf("Etsy returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload listingsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fail(fmt.Sprintf("failed to parse Etsy response: %v", err))
	}

	products := make([]models.ExternalProduct, 0, len(payload.Results))
	for _, l := range payload.Results {
		products = append(products, l.normalize())
	}

	total := payload.Count
	if total == 0 {
		total = len(products)
	}

	return models.SearchResponse{
		Success:      true,
		Platform:     models.PlatformEtsy.String(),
		Products:     products,
		TotalResults: total,
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
}

type listingsResponse struct {
	Count   int       `json:"count"`
	Results []listing `json:"results"`
}

type listing struct {
	ListingID   int    `json:"listing_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Price       struct {
		Amount       int    `json:"amount"`
		Divisor      int    `json:"divisor"`
		CurrencyCode string `json:"currency_code"`
	} `json:"price"`
	Images []struct {
		URL570xN string `json:"url_570xN"`
	} `json:"images"`
	ShopName     string   `json:"shop_name"`
	NumFavorers  int      `json:"num_favorers"`
	TaxonomyPath []string `json:"taxonomy_path"`
	WhoMade      string   `json:"who_made"`
}

func (l listing) normalize() models.ExternalProduct {
	currency := l.Price.CurrencyCode
	if currency == "" {
		currency = "USD"
	}

	image := ""
	if len(l.Images) > 0 {
		image = l.Images[0].URL570xN
	}

	category := ""
	if len(l.TaxonomyPath) > 0 {
		category = l.TaxonomyPath[len(l.TaxonomyPath)-1]
	}

	// Etsy is handmade and vintage; anything not made recently counts as used.
	condition := models.ConditionNew
	if strings.Contains(strings.ToLower(l.WhoMade), "before") {
		condition = models.ConditionUsed
	}

	p := models.ExternalProduct{
		ID:          strconv.Itoa(l.ListingID),
		Title:       l.Title,
		Description: l.Description,
		Price:       platforms.FromMinorUnits(l.Price.Amount, l.Price.Divisor),
		Currency:    currency,
		ImageURL:    platforms.OrPlaceholder(image),
		ProductURL:  l.URL,
		Platform:    models.PlatformEtsy,
		Brand:       platforms.InferBrand(l.Title),
		Category:    category,
		Condition:   condition,
	}
	if l.ShopName != "" {
		p.Seller = &models.Seller{Name: l.ShopName}
	}
	return p
}
