package models

import (
	"fmt"
	"strings"
)

// Platform identifies the marketplace a product was sourced from.
type Platform string

const (
	PlatformEbay    Platform = "ebay"
	PlatformWalmart Platform = "walmart"
	PlatformAmazon  Platform = "amazon"
	PlatformGoogle  Platform = "google"
	PlatformEtsy    Platform = "etsy"
)

// AllPlatforms lists every platform the aggregator knows about, in the
// order they are dispatched when a caller asks for all of them.
var AllPlatforms = []Platform{PlatformEbay, PlatformWalmart, PlatformAmazon, PlatformGoogle, PlatformEtsy}

func (p Platform) String() string {
	return string(p)
}

// ParsePlatform normalises a caller-supplied tag into a known Platform.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformEbay:
		return PlatformEbay, nil
	case PlatformWalmart:
		return PlatformWalmart, nil
	case PlatformAmazon:
		return PlatformAmazon, nil
	case PlatformGoogle:
		return PlatformGoogle, nil
	case PlatformEtsy:
		return PlatformEtsy, nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", s)
	}
}

type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

type Shipping struct {
	Cost float64 `json:"cost"`
	Free bool    `json:"free"`
}

type Seller struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating,omitempty"`
}

// ExternalProduct is the normalized record every adapter maps its vendor's
// response into. IDs are unique per platform only; callers needing a global
// key must namespace by Platform.
type ExternalProduct struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	Currency      string    `json:"currency"`
	ImageURL      string    `json:"image_url,omitempty"`
	ProductURL    string    `json:"product_url,omitempty"`
	Platform      Platform  `json:"platform"`
	Brand         string    `json:"brand,omitempty"`
	Category      string    `json:"category,omitempty"`
	Condition     Condition `json:"condition"`
	Shipping      *Shipping `json:"shipping,omitempty"`
	Seller        *Seller   `json:"seller,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	ReviewCount   int       `json:"review_count,omitempty"`
}

// Discounted reports whether the product carries a valid strike-through
// price. OriginalPrice <= Price counts as no discount.
func (p ExternalProduct) Discounted() bool {
	return p.OriginalPrice > p.Price
}

// DiscountPercent returns the discount as a fraction in [0, 1).
func (p ExternalProduct) DiscountPercent() float64 {
	if !p.Discounted() || p.OriginalPrice <= 0 {
		return 0
	}
	return (p.OriginalPrice - p.Price) / p.OriginalPrice
}
