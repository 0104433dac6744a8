package main

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	scalargo "github.com/bdpiprava/scalar-go"
	"github.com/google/uuid"

	"stylehunt/pkg/api"
	"stylehunt/pkg/cache"
	"stylehunt/pkg/config"
	"stylehunt/pkg/logger"
	"stylehunt/pkg/models"
	"stylehunt/pkg/platforms/amazon"
	"stylehunt/pkg/platforms/ebay"
	"stylehunt/pkg/platforms/etsy"
	"stylehunt/pkg/platforms/google"
	"stylehunt/pkg/platforms/walmart"
	"stylehunt/pkg/ratelimit"
	"stylehunt/pkg/search"
)

var (
	aggregator      *search.Aggregator
	ebayLimiter     *ratelimit.Limiter
	maxPlatformsPer = 5
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	maxPlatformsPer = cfg.MaxPlatformsPerRequest

	ttl := time.Duration(cfg.CacheTTLMinutes) * time.Minute
	var store cache.Store
	if cfg.RedisAddr != "" {
		store, err = cache.NewRedis(cfg.RedisAddr, ttl)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize redis cache")
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("redis cache initialized")
	} else {
		store, err = cache.NewSQLite(cfg.CacheDBPath, ttl)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize sqlite cache")
		}
		logger.Info().Str("path", cfg.CacheDBPath).Dur("ttl", ttl).Msg("sqlite cache initialized")
	}
	defer store.Close()

	ebayLimiter = ratelimit.New(cfg.Ebay.DailyLimit, time.Duration(cfg.Ebay.MinIntervalMs)*time.Millisecond)

	aggregator = search.New(store,
		ebay.New(cfg.Ebay, cfg.EnableLiveSearch, ebayLimiter),
		walmart.New(cfg.Walmart, cfg.EnableLiveSearch),
		amazon.New(cfg.Amazon, cfg.EnableLiveSearch),
		google.New(cfg.EnableLiveSearch),
		etsy.New(cfg.Etsy, cfg.EnableLiveSearch),
	)
	logger.Info().Bool("live", cfg.EnableLiveSearch).Msg("search aggregator ready")

	http.HandleFunc("/", rootHandler)

	if ip := GetOutboundIP(); ip != nil {
		fmt.Printf("Local Network URL: http://%s:%s\n", ip.String(), cfg.Port)
	}
	fmt.Printf("Access URL: http://localhost:%s\n", cfg.Port)
	fmt.Printf("API Docs: http://localhost:%s/\n", cfg.Port)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           nil,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/search":
		searchHandler(w, r)
		return
	case r.URL.Path == "/search/deals":
		dealsHandler(w, r)
		return
	case r.URL.Path == "/limits":
		limitsHandler(w, r)
		return
	}

	// Serve Scalar docs on root path
	html, err := scalargo.NewV2(
		scalargo.WithSpecDir("./"),
		scalargo.WithMetaDataOpts(
			scalargo.WithTitle("StyleHunt Search API"),
		),
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

func GetOutboundIP() net.IP {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		addrs, _ := net.InterfaceAddrs()
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					return ipnet.IP
				}
			}
		}
		return nil
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	return localAddr.IP
}

// parseSearchOptions reads the shared query parameters of /search and
// /search/deals. Unknown platform tags are passed through untouched; the
// aggregator records them as per-platform failures instead of aborting.
func parseSearchOptions(r *http.Request) (models.SearchOptions, error) {
	q := r.URL.Query()
	opts := models.SearchOptions{
		Category: q.Get("category"),
		SortBy:   models.SortKey(strings.ToLower(q.Get("sort"))),
	}

	if raw := q.Get("platforms"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" {
				continue
			}
			opts.Platforms = append(opts.Platforms, models.Platform(tag))
		}
	}
	if len(opts.Platforms) > maxPlatformsPer {
		return opts, fmt.Errorf("too many platforms: %d requested, limit is %d", len(opts.Platforms), maxPlatformsPer)
	}

	if raw := q.Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("invalid max: %q", raw)
		}
		opts.MaxResultsPerPlatform = n
	}

	minRaw, maxRaw := q.Get("min_price"), q.Get("max_price")
	if minRaw != "" || maxRaw != "" {
		pr := models.PriceRange{Max: 1e12}
		if minRaw != "" {
			v, err := strconv.ParseFloat(minRaw, 64)
			if err != nil || v < 0 {
				return opts, fmt.Errorf("invalid min_price: %q", minRaw)
			}
			pr.Min = v
		}
		if maxRaw != "" {
			v, err := strconv.ParseFloat(maxRaw, 64)
			if err != nil || v < 0 {
				return opts, fmt.Errorf("invalid max_price: %q", maxRaw)
			}
			pr.Max = v
		}
		if pr.Min > pr.Max {
			return opts, fmt.Errorf("min_price %v exceeds max_price %v", pr.Min, pr.Max)
		}
		opts.PriceRange = &pr
	}

	return opts, nil
}

func searchHandler(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	if r.Method != http.MethodGet {
		api.WriteMethodNotAllowed(w, r.URL.Path, requestID)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		api.WriteBadRequest(w, "Missing query parameter: q", r.URL.Path, requestID)
		return
	}

	opts, err := parseSearchOptions(r)
	if err != nil {
		api.WriteBadRequest(w, err.Error(), r.URL.Path, requestID)
		return
	}

	start := time.Now()
	result := aggregator.SearchMultiplePlatforms(r.Context(), query, opts)
	logger.Info().
		Str("request_id", requestID).
		Str("query", query).
		Int("products", len(result.Products)).
		Dur("elapsed", time.Since(start)).
		Msg("search completed")

	api.WriteJSON(w, result)
}

func dealsHandler(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	if r.Method != http.MethodGet {
		api.WriteMethodNotAllowed(w, r.URL.Path, requestID)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		api.WriteBadRequest(w, "Missing query parameter: q", r.URL.Path, requestID)
		return
	}

	dealType := r.URL.Query().Get("type")
	if dealType == "" {
		dealType = "best"
	}

	count := 5
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			api.WriteBadRequest(w, fmt.Sprintf("invalid count: %q", raw), r.URL.Path, requestID)
			return
		}
		count = n
	}

	opts, err := parseSearchOptions(r)
	if err != nil {
		api.WriteBadRequest(w, err.Error(), r.URL.Path, requestID)
		return
	}
	if len(opts.Platforms) == 0 {
		opts.Platforms = aggregator.Platforms()
	}

	result := aggregator.SearchMultiplePlatforms(r.Context(), query, opts)

	var picked []models.ExternalProduct
	switch dealType {
	case "best":
		picked = search.GetBestDeals(result.Products, count)
	case "discounts":
		picked = search.GetBiggestDiscounts(result.Products, count)
	case "top-rated":
		picked = search.GetTopRatedProducts(result.Products, count)
	default:
		api.WriteBadRequest(w, "Invalid type. Available: best, discounts, top-rated", r.URL.Path, requestID)
		return
	}

	api.WriteJSON(w, map[string]any{
		"success":  result.Success,
		"query":    query,
		"type":     dealType,
		"products": picked,
	})
}

func limitsHandler(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)

	if r.Method != http.MethodGet {
		api.WriteMethodNotAllowed(w, r.URL.Path, requestID)
		return
	}

	api.WriteJSON(w, map[string]ratelimit.Stats{
		models.PlatformEbay.String(): ebayLimiter.GetStats(),
	})
}
