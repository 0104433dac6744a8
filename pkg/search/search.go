// Package search fans a query out to marketplace adapters and merges their
// normalized results into one deterministic list.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stylehunt/pkg/logger"
	"stylehunt/pkg/models"
)

// Adapter is one marketplace behind the common contract. Search must never
// panic and never signals failure through a Go error: whatever goes wrong
// (config, network, parsing) comes back as Success=false inside the
// response, so the fan-out join never has to handle partial rejection.
type Adapter interface {
	Platform() models.Platform
	Search(ctx context.Context, query, category string, maxResults int) models.SearchResponse
}

// ResultCache stores per-platform search responses. Implementations live in
// pkg/cache; a nil cache disables caching.
type ResultCache interface {
	Get(platform, key string) (*models.SearchResponse, bool)
	Set(platform, key string, res *models.SearchResponse)
}

const (
	defaultMaxResults = 10
	defaultSort       = models.SortByPrice
)

// defaultPlatforms is used when a caller supplies no platform list.
var defaultPlatforms = []models.Platform{models.PlatformEbay}

// Aggregator dispatches searches to its registered adapters concurrently and
// assembles the combined response.
type Aggregator struct {
	adapters map[models.Platform]Adapter
	cache    ResultCache
}

// New builds an aggregator over the given adapters. cache may be nil.
func New(cache ResultCache, adapters ...Adapter) *Aggregator {
	m := make(map[models.Platform]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Platform()] = a
	}
	return &Aggregator{adapters: m, cache: cache}
}

// Platforms returns the registered platform tags in dispatch order.
func (a *Aggregator) Platforms() []models.Platform {
	var out []models.Platform
	for _, p := range models.AllPlatforms {
		if _, ok := a.adapters[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// SearchMultiplePlatforms runs one aggregated search. All requested adapters
// are dispatched before any is awaited; a failing or unknown platform
// degrades to a failure entry in PlatformResults instead of aborting the
// batch. The method itself never returns an error.
func (a *Aggregator) SearchMultiplePlatforms(ctx context.Context, query string, opts models.SearchOptions) models.MultiPlatformSearchResponse {
	start := time.Now()

	platforms := opts.Platforms
	if len(platforms) == 0 {
		platforms = defaultPlatforms
	}
	maxResults := opts.MaxResultsPerPlatform
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = defaultSort
	}

	results := make([]models.SearchResponse, len(platforms))
	var wg sync.WaitGroup
	for i, p := range platforms {
		wg.Add(1)
		go func(i int, p models.Platform) {
			defer wg.Done()
			defer func() {
				// An adapter panic is a programming error; degrade it to a
				// failure entry so the batch survives.
				if r := recover(); r != nil {
					logger.Error().Interface("panic", r).Str("platform", p.String()).Msg("adapter panicked")
					results[i] = models.SearchResponse{
						Platform: p.String(),
						Error:    fmt.Sprintf("internal error: %v", r),
					}
				}
			}()
			results[i] = a.searchOne(ctx, p, query, opts.Category, maxResults)
		}(i, p)
	}
	wg.Wait()

	resp := models.MultiPlatformSearchResponse{
		Query:           query,
		PlatformResults: make(map[string]models.SearchResponse, len(platforms)),
	}

	var merged []models.ExternalProduct
	anySuccess := false
	for i, p := range platforms {
		r := results[i]
		resp.PlatformResults[strings.ToLower(p.String())] = r
		if r.Success {
			anySuccess = true
			merged = append(merged, r.Products...)
			resp.TotalProducts += r.TotalResults
		}
	}

	if opts.PriceRange != nil {
		merged = filterPriceRange(merged, *opts.PriceRange)
	}
	sortProducts(merged, sortBy)

	resp.Products = merged
	resp.Success = anySuccess
	if !anySuccess {
		resp.Error = "no platform returned results"
	}
	resp.SearchTimeMs = time.Since(start).Milliseconds()
	return resp
}

func (a *Aggregator) searchOne(ctx context.Context, p models.Platform, query, category string, maxResults int) models.SearchResponse {
	adapter, ok := a.adapters[p]
	if !ok {
		return models.SearchResponse{
			Platform: p.String(),
			Error:    fmt.Sprintf("unsupported platform: %s", p),
		}
	}

	key := cacheKey(query, category, maxResults)
	if a.cache != nil {
		if cached, ok := a.cache.Get(p.String(), key); ok {
			logger.Dedup("Cache hit for %s %q", p, query)
			return *cached
		}
	}

	res := adapter.Search(ctx, query, category, maxResults)
	if res.Success && a.cache != nil {
		a.cache.Set(p.String(), key, &res)
	}
	return res
}

func cacheKey(query, category string, maxResults int) string {
	return fmt.Sprintf("%s|%s|%d", strings.ToLower(strings.TrimSpace(query)), strings.ToLower(category), maxResults)
}

func filterPriceRange(products []models.ExternalProduct, r models.PriceRange) []models.ExternalProduct {
	filtered := products[:0]
	for _, p := range products {
		if p.Price >= r.Min && p.Price <= r.Max {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortProducts orders the merged list in place. Stable sorts keep equal keys
// in concatenation order. An unrecognised key behaves like relevance: the
// concatenation order stands.
func sortProducts(products []models.ExternalProduct, by models.SortKey) {
	switch by {
	case models.SortByPrice:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case models.SortByRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
