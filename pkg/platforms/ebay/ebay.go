// Package ebay adapts the eBay Finding API to the common search contract.
// It is the one platform throttled by a local rate limiter: the Finding API
// enforces a daily call quota per app ID.
package ebay

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
	"stylehunt/pkg/ratelimit"
	"stylehunt/pkg/search"
)

const (
	findingURL = "https://svcs.ebay.com/services/search/FindingService/v1"

	// Finding API page-size ceiling.
	maxPageSize = 100
)

// categoryIDs maps our free-text categories onto eBay taxonomy IDs.
// Unrecognised categories are simply not narrowed.
var categoryIDs = map[string]string{
	"clothing":    "11450",
	"shoes":       "93427",
	"accessories": "4251",
	"jewelry":     "281",
	"watches":     "14324",
	"bags":        "169291",
}

// Adapter is the live Finding API client.
type Adapter struct {
	cfg     config.EbayConfig
	limiter *ratelimit.Limiter
	client  *http.Client

	// BaseURL is overridable so tests can point at an httptest server.
	BaseURL string
}

// New selects the live adapter when live search is enabled and a real app ID
// is configured, the sample adapter otherwise.
func New(cfg config.EbayConfig, liveEnabled bool, limiter *ratelimit.Limiter) search.Adapter {
	if !liveEnabled || !cfg.Configured() {
		return sample.New(models.PlatformEbay)
	}
	return NewAdapter(cfg, limiter)
}

// NewAdapter builds the live adapter unconditionally. Tests use it directly.
func NewAdapter(cfg config.EbayConfig, limiter *ratelimit.Limiter) *Adapter {
	return &Adapter{
		cfg:     cfg,
		limiter: limiter,
		client:  &http.Client{Timeout: 15 * time.Second},
		BaseURL: findingURL,
	}
}

func (a *Adapter) Platform() models.Platform {
	return models.PlatformEbay
}

func (a *Adapter) Search(ctx context.Context, query, category string, maxResults int) models.SearchResponse {
	start := time.Now()
	fail := func(msg string) models.SearchResponse {
		return models.SearchResponse{
			Platform:     models.PlatformEbay.String(),
			Products:     []models.ExternalProduct{},
			SearchTimeMs: time.Since(start).Milliseconds(),
			Error:        msg,
		}
	}

	if !a.cfg.Configured() {
		return fail("eBay app ID is missing or a placeholder")
	}

	if a.limiter != nil && !a.limiter.CanMakeCall(ctx) {
		stats := a.limiter.GetStats()
		return fail(fmt.Sprintf("eBay daily call limit reached (%d/%d)", stats.CallsToday, stats.DailyLimit))
	}

	params := url.Values{}
	params.Set("OPERATION-NAME", "findItemsByKeywords")
	params.Set("SERVICE-VERSION", "1.0.0")
	params.Set("SECURITY-APPNAME", a.cfg.AppID)
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("REST-PAYLOAD", "")
	params.Set("keywords", query)
	params.Set("paginationInput.entriesPerPage", strconv.Itoa(platforms.Clamp(maxResults, maxPageSize)))
	if id, ok := categoryIDs[strings.ToLower(category)]; ok {
		params.Set("categoryId", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fail(fmt.Sprintf("failed to build request: %v", err))
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fail(fmt.Sprintf("eBay request failed: %v", err))
	}
	defer resp.Body.Close()

	if a.limiter != nil {
		a.limiter.RecordCall()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Sprintf("failed to read eBay response: %v", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests || strings.Contains(string(body), "RateLimiter") {
		stats := ratelimit.Stats{}
		if a.limiter != nil {
			stats = a.limiter.GetStats()
		}
		return fail(fmt.Sprintf("eBay rate limit exceeded upstream (local count %d/%d)", stats.CallsToday, stats.DailyLimit))
	}
	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Sprintf("eBay returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload findingResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fail(fmt.Sprintf("failed to parse eBay response: %v", err))
	}

	items, total := payload.items()
	products := make([]models.ExternalProduct, 0, len(items))
	for _, it := range items {
		products = append(products, it.normalize())
	}

	return models.SearchResponse{
		Success:      true,
		Platform:     models.PlatformEbay.String(),
		Products:     products,
		TotalResults: total,
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
}
