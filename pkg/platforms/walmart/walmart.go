// Package walmart adapts the Walmart affiliate search API to the common
// search contract.
package walmart

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
	searchURL = "https://developer.api.walmart.com/api-proxy/service/affil/product/v2/search"

	// The affiliate search endpoint returns at most 25 items per page.
	maxPageSize = 25
)

var categoryIDs = map[string]string{
	"clothing":    "5438",
	"shoes":       "5438_1045804",
	"accessories": "5438_1045799",
	"jewelry":     "3891",
	"bags":        "5438_1045801",
}

type Adapter struct {
	cfg    config.WalmartConfig
	client *http.Client

	BaseURL string
}

// New selects the live adapter when live search is enabled and an API key is
// configured, the sample adapter otherwise.
func New(cfg config.WalmartConfig, liveEnabled bool) search.Adapter {
	if !liveEnabled || !cfg.Configured() {
		return sample.New(models.PlatformWalmart)
	}
	return NewAdapter(cfg)
}

func NewAdapter(cfg config.WalmartConfig) *Adapter {
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: 15 * time.Second},
		BaseURL: searchURL,
	}
}

func (a *Adapter) Platform() models.Platform {
	return models.PlatformWalmart
}

func (a *Adapter) Search(ctx context.Context, query, category string, maxResults int) models.SearchResponse {
	start := time.Now()
	fail := func(msg string) models.SearchResponse {
		return models.SearchResponse{
			Platform:     models.PlatformWalmart.String(),
			Products:     []models.ExternalProduct{},
			SearchTimeMs: time.Since(start).Milliseconds(),
			Error:        msg,
		}
	}

	if !a.cfg.Configured() {
		return fail("Walmart API key is missing or a placeholder")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("numItems", strconv.Itoa(platforms.Clamp(maxResults, maxPageSize)))
	if id, ok := categoryIDs[strings.ToLower(category)]; ok {
		params.Set("categoryId", id)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fail(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("WM_SEC.KEY_VERSION", "1")
	req.Header.Set("WM_CONSUMER.ID", a.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fail(fmt.Sprintf("Walmart request failed: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Sprintf("failed to read Walmart response: %v", err))
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fail("Walmart rate limit exceeded upstream")
	}
	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Sprintf("Walmart returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return fail(fmt.Sprintf("failed to parse Walmart response: %v", err))
	}

	products := make([]models.ExternalProduct, 0, len(payload.Items))
	for _, it := range payload.Items {
		products = append(products, it.normalize())
	}

	total := payload.TotalResults
	if total == 0 {
		total = len(products)
	}

	return models.SearchResponse{
		Success:      true,
		Platform:     models.PlatformWalmart.String(),
		Products:     products,
		TotalResults: total,
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
}

type searchResponse struct {
	Query        string       `json:"query"`
	TotalResults int          `json:"totalResults"`
	Items        []searchItem `json:"items"`
}

type searchItem struct {
	ItemID                    int     `json:"itemId"`
	Name                      string  `json:"name"`
	ShortDescription          string  `json:"shortDescription"`
	SalePrice                 float64 `json:"salePrice"`
	MSRP                      float64 `json:"msrp"`
	BrandName                 string  `json:"brandName"`
	CategoryPath              string  `json:"categoryPath"`
	ThumbnailImage            string  `json:"thumbnailImage"`
	ProductURL                string  `json:"productUrl"`
	CustomerRating            string  `json:"customerRating"`
	NumReviews                int     `json:"numReviews"`
	StandardShipRate          float64 `json:"standardShipRate"`
	FreeShippingOver35Dollars bool    `json:"freeShippingOver35Dollars"`
	SellerInfo                string  `json:"sellerInfo"`
	AvailableOnline           bool    `json:"availableOnline"`
}

func (it searchItem) normalize() models.ExternalProduct {
	brand := it.BrandName
	if brand == "" {
		brand = platforms.InferBrand(it.Name)
	}

	p := models.ExternalProduct{
		ID:          strconv.Itoa(it.ItemID),
		Title:       it.Name,
		Description: it.ShortDescription,
		Price:       it.SalePrice,
		Currency:    "USD",
		ImageURL:    platforms.OrPlaceholder(it.ThumbnailImage),
		ProductURL:  it.ProductURL,
		Platform:    models.PlatformWalmart,
		Brand:       brand,
		Category:    lastCategory(it.CategoryPath),
		Condition:   models.ConditionNew,
		Rating:      platforms.ParsePrice(it.CustomerRating),
		ReviewCount: it.NumReviews,
		Shipping: &models.Shipping{
			Cost: it.StandardShipRate,
			Free: it.StandardShipRate == 0 || it.FreeShippingOver35Dollars,
		},
	}
	if it.MSRP > it.SalePrice {
		p.OriginalPrice = it.MSRP
	}
	if it.SellerInfo != "" {
		p.Seller = &models.Seller{Name: it.SellerInfo}
	}
	return p
}

// lastCategory reduces Walmart's "Clothing/Women/Jackets" path to its leaf.
func lastCategory(path string) string {
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
