// Package cache stores per-platform search responses so repeated queries
// skip the vendor round trip. Two backends: a local sqlite file (default)
// and Redis for multi-instance deployments.
package cache

import (
	"stylehunt/pkg/models"
)

// Store is the backend contract. Get misses on expired entries; Set is
// best-effort and logs instead of failing the search path.
type Store interface {
	Get(platform, key string) (*models.SearchResponse, bool)
	Set(platform, key string, res *models.SearchResponse)
	Close() error
}
