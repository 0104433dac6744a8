// Package google adapts Google Shopping results to the common search
// contract. Google has no public shopping API, so this adapter scrapes the
// result page with colly the way the HTML-backed retailers are handled.
package google

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"stylehunt/pkg/models"
	"stylehunt/pkg/platforms"
	"stylehunt/pkg/platforms/sample"
	"stylehunt/pkg/search"
)

const (
	shoppingURL = "https://www.google.com/search"

	// One result page carries at most this many product cards.
	maxPageSize = 40

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// categoryTerms refine the query, since a scrape has no taxonomy parameter.
var categoryTerms = map[string]string{
	"clothing":    "clothing",
	"shoes":       "shoes",
	"accessories": "fashion accessories",
	"jewelry":     "jewelry",
	"bags":        "bags",
}

type Adapter struct {
	// BaseURL and AllowedDomains are overridable so tests can serve a fixture
	// page from httptest.
	BaseURL        string
	AllowedDomains []string
}

// New returns the live scraper when live search is enabled. Google needs no
// credentials, so the gate is the only switch.
func New(liveEnabled bool) search.Adapter {
	if !liveEnabled {
		return sample.New(models.PlatformGoogle)
	}
	return NewAdapter()
}

func NewAdapter() *Adapter {
	return &Adapter{
		BaseURL:        shoppingURL,
		AllowedDomains: []string{"www.google.com"},
	}
}

func (a *Adapter) Platform() models.Platform {
	return models.PlatformGoogle
}

func (a *Adapter) Search(ctx context.Context, query, category string, maxResults int) models.SearchResponse {
	start := time.Now()
	max := platforms.Clamp(maxResults, maxPageSize)

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
	)
	c.AllowedDomains = a.AllowedDomains

	var products []models.ExternalProduct

	c.OnHTML("div.sh-dgr__content", func(e *colly.HTMLElement) {
		if len(products) >= max {
			return
		}

		title := strings.TrimSpace(e.ChildText("h3.tAxDx"))
		if title == "" {
			return
		}

		id := e.Attr("data-docid")
		if id == "" {
			id = fmt.Sprintf("google-%d", len(products)+1)
		}

		p := models.ExternalProduct{
			ID:         id,
			Title:      title,
			Price:      platforms.ParsePrice(e.ChildText("span.a8Pemb")),
			Currency:   "USD",
			ImageURL:   platforms.OrPlaceholder(e.ChildAttr("img", "src")),
			ProductURL: productLink(e.ChildAttr("a.shntl", "href")),
			Platform:   models.PlatformGoogle,
			Brand:      platforms.InferBrand(title),
			Category:   strings.ToLower(category),
			Condition:  models.ConditionNew,
		}

		if old := platforms.ParsePrice(e.ChildText("span.T14wmb")); old > p.Price {
			p.OriginalPrice = old
		}
		if seller := strings.TrimSpace(e.ChildText("div.aULzUe")); seller != "" {
			p.Seller = &models.Seller{Name: seller}
		}
		if rating := platforms.ParsePrice(e.ChildAttr("span.Rsc7Yb", "aria-label")); rating > 0 {
			p.Rating = rating
			p.ReviewCount = reviewCount(e.ChildText("span.QIrs8"))
		}

		products = append(products, p)
	})

	q := query
	if term, ok := categoryTerms[strings.ToLower(category)]; ok {
		q = query + " " + term
	}

	params := url.Values{}
	params.Set("tbm", "shop")
	params.Set("q", q)
	params.Set("num", strconv.Itoa(max))

	if err := c.Visit(a.BaseURL + "?" + params.Encode()); err != nil {
		return models.SearchResponse{
			Platform:     models.PlatformGoogle.String(),
			Products:     []models.ExternalProduct{},
			SearchTimeMs: time.Since(start).Milliseconds(),
			Error:        fmt.Sprintf("Google Shopping request failed: %v", err),
		}
	}
	c.Wait()

	return models.SearchResponse{
		Success:      true,
		Platform:     models.PlatformGoogle.String(),
		Products:     products,
		TotalResults: len(products),
		SearchTimeMs: time.Since(start).Milliseconds(),
	}
}

// productLink strips Google's /url?url= redirect wrapper.
func productLink(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/url") {
		if u, err := url.Parse(href); err == nil {
			if target := u.Query().Get("url"); target != "" {
				return target
			}
		}
	}
	if strings.HasPrefix(href, "/") {
		return "https://www.google.com" + href
	}
	return href
}

// reviewCount parses counts like "(1,234)".
func reviewCount(s string) int {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, _ := strconv.Atoi(digits.String())
	return n
}
