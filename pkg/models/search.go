package models

// SortKey selects the ordering of the merged result list.
type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByRelevance SortKey = "relevance"
	SortByRating    SortKey = "rating"
)

// PriceRange is an inclusive [Min, Max] filter on ExternalProduct.Price.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchOptions configures one aggregated search. Zero values fall back to
// the defaults applied by the aggregator: a single default platform, ten
// results per platform, price sort.
type SearchOptions struct {
	Platforms             []Platform  `json:"platforms,omitempty"`
	Category              string      `json:"category,omitempty"`
	MaxResultsPerPlatform int         `json:"max_results_per_platform,omitempty"`
	SortBy                SortKey     `json:"sort_by,omitempty"`
	PriceRange            *PriceRange `json:"price_range,omitempty"`
}

// SearchResponse is one adapter's result. Adapters never surface a Go error;
// failures of any kind come back as Success=false with Error set and an
// empty product list.
type SearchResponse struct {
	Success      bool              `json:"success"`
	Platform     string            `json:"platform"`
	Products     []ExternalProduct `json:"products"`
	TotalResults int               `json:"total_results,omitempty"`
	SearchTimeMs int64             `json:"search_time_ms,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// MultiPlatformSearchResponse is the aggregator's merged result.
// PlatformResults is keyed by lower-cased platform name and includes an
// entry for every requested platform, failed ones included, so callers can
// see which sources contributed.
type MultiPlatformSearchResponse struct {
	Success         bool                      `json:"success"`
	Query           string                    `json:"query"`
	TotalProducts   int                       `json:"total_products"`
	Products        []ExternalProduct         `json:"products"`
	PlatformResults map[string]SearchResponse `json:"platform_results"`
	SearchTimeMs    int64                     `json:"search_time_ms"`
	Error           string                    `json:"error,omitempty"`
}
