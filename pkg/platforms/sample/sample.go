// Package sample is the stand-in adapter used when a platform has no usable
// credentials or live search is disabled. It generates a deterministic
// catalog from the query so unconfigured deployments still demo end to end
// and tests get stable data.
package sample

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"stylehunt/pkg/models"
)

var (
	styles = []string{"Classic", "Vintage", "Slim Fit", "Oversized", "Premium", "Casual", "Designer", "Everyday"}
	brands = []string{"Zara", "H&M", "Uniqlo", "Levi's", "Mango", "Gap", "Nike", "Adidas"}
)

type Adapter struct {
	platform models.Platform
}

func New(platform models.Platform) *Adapter {
	return &Adapter{platform: platform}
}

func (a *Adapter) Platform() models.Platform {
	return a.platform
}

// Search never fails. The same (platform, query) pair always yields the
// same products, so cached and fresh responses agree.
func (a *Adapter) Search(_ context.Context, query, _ string, maxResults int) models.SearchResponse {
	start := time.Now()

	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 20 {
		maxResults = 20
	}

	rng := rand.New(rand.NewSource(seed(a.platform, query)))

	products := make([]models.ExternalProduct, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		style := styles[rng.Intn(len(styles))]
		brand := brands[rng.Intn(len(brands))]
		price := 10 + rng.Float64()*140
		price = float64(int(price*100)) / 100

		p := models.ExternalProduct{
			ID:          fmt.Sprintf("%s-sample-%d", a.platform, i+1),
			Title:       fmt.Sprintf("%s %s %s", brand, style, titleCase(query)),
			Description: fmt.Sprintf("Sample listing for %q on %s", query, a.platform),
			Price:       price,
			Currency:    "USD",
			ImageURL:    fmt.Sprintf("https://via.placeholder.com/300x300?text=%s+%d", a.platform, i+1),
			ProductURL:  fmt.Sprintf("https://example.com/%s/sample-%d", a.platform, i+1),
			Platform:    a.platform,
			Brand:       brand,
			Category:    "clothing",
			Condition:   models.ConditionNew,
			Rating:      float64(30+rng.Intn(21)) / 10,
			ReviewCount: rng.Intn(2000),
		}
		// Roughly a third of the catalog is on sale.
		if rng.Intn(3) == 0 {
			p.OriginalPrice = float64(int(p.Price*(1.1+rng.Float64()*0.6)*100)) / 100
		}
		if rng.Intn(2) == 0 {
			p.Shipping = &models.Shipping{Free: true}
		} else {
			p.Shipping = &models.Shipping{Cost: float64(2+rng.Intn(8)) + 0.99}
		}
		products = append(products, p)
	}

	return models.SearchResponse{
		Success:      true,
		Platform:     a.platform.String(),
		Products:     products,
		TotalResults: len(products),
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
}

func seed(platform models.Platform, query string) int64 {
	h := fnv.New64a()
	h.Write([]byte(platform))
	h.Write([]byte("|"))
	h.Write([]byte(strings.ToLower(strings.TrimSpace(query))))
	return int64(h.Sum64())
}

func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	if len(words) == 0 {
		return "Fashion Pick"
	}
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
