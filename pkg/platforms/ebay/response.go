package ebay

import (
	"strconv"
	"strings"

	"stylehunt/pkg/models"
	"stylehunt/pkg/platforms"
)

// The Finding API wraps nearly every field in a single-element array and
// ships numbers as strings. The DTOs below mirror that shape exactly; all
// of the unwrapping happens in normalize.

type findingResponse struct {
	FindItemsByKeywordsResponse []keywordsResponse `json:"findItemsByKeywordsResponse"`
}

type keywordsResponse struct {
	Ack              []string           `json:"ack"`
	SearchResult     []searchResult     `json:"searchResult"`
	PaginationOutput []paginationOutput `json:"paginationOutput"`
}

type searchResult struct {
	Count string        `json:"@count"`
	Item  []findingItem `json:"item"`
}

type paginationOutput struct {
	TotalEntries []string `json:"totalEntries"`
}

type findingItem struct {
	ItemID            []string         `json:"itemId"`
	Title             []string         `json:"title"`
	GalleryURL        []string         `json:"galleryURL"`
	ViewItemURL       []string         `json:"viewItemURL"`
	SellingStatus     []sellingStatus  `json:"sellingStatus"`
	Condition         []itemCondition  `json:"condition"`
	PrimaryCategory   []namedCategory  `json:"primaryCategory"`
	ShippingInfo      []shippingInfo   `json:"shippingInfo"`
	SellerInfo        []sellerInfo     `json:"sellerInfo"`
	DiscountPriceInfo []discountPrices `json:"discountPriceInfo"`
}

type sellingStatus struct {
	CurrentPrice []moneyValue `json:"currentPrice"`
}

type moneyValue struct {
	CurrencyID string `json:"@currencyId"`
	Value      string `json:"__value__"`
}

type itemCondition struct {
	ConditionDisplayName []string `json:"conditionDisplayName"`
}

type namedCategory struct {
	CategoryName []string `json:"categoryName"`
}

type shippingInfo struct {
	ShippingServiceCost []moneyValue `json:"shippingServiceCost"`
	ShippingType        []string     `json:"shippingType"`
}

type sellerInfo struct {
	SellerUserName          []string `json:"sellerUserName"`
	PositiveFeedbackPercent []string `json:"positiveFeedbackPercent"`
}

type discountPrices struct {
	OriginalRetailPrice []moneyValue `json:"originalRetailPrice"`
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func firstMoney(m []moneyValue) (float64, string) {
	if len(m) == 0 {
		return 0, ""
	}
	return platforms.ParsePrice(m[0].Value), m[0].CurrencyID
}

// items digs the item list and the upstream total match count out of the
// nested wrappers.
func (r findingResponse) items() ([]findingItem, int) {
	if len(r.FindItemsByKeywordsResponse) == 0 {
		return nil, 0
	}
	kr := r.FindItemsByKeywordsResponse[0]

	var items []findingItem
	if len(kr.SearchResult) > 0 {
		items = kr.SearchResult[0].Item
	}

	total := len(items)
	if len(kr.PaginationOutput) > 0 {
		if n, err := strconv.Atoi(first(kr.PaginationOutput[0].TotalEntries)); err == nil {
			total = n
		}
	}
	return items, total
}

func (it findingItem) normalize() models.ExternalProduct {
	price, currency := 0.0, "USD"
	if len(it.SellingStatus) > 0 {
		p, c := firstMoney(it.SellingStatus[0].CurrentPrice)
		price = p
		if c != "" {
			currency = c
		}
	}

	title := first(it.Title)
	p := models.ExternalProduct{
		ID:         first(it.ItemID),
		Title:      title,
		Price:      price,
		Currency:   currency,
		ImageURL:   platforms.OrPlaceholder(first(it.GalleryURL)),
		ProductURL: first(it.ViewItemURL),
		Platform:   models.PlatformEbay,
		Brand:      platforms.InferBrand(title),
		Condition:  parseCondition(it),
	}

	if len(it.PrimaryCategory) > 0 {
		p.Category = first(it.PrimaryCategory[0].CategoryName)
	}

	if len(it.DiscountPriceInfo) > 0 {
		orig, _ := firstMoney(it.DiscountPriceInfo[0].OriginalRetailPrice)
		if orig > price {
			p.OriginalPrice = orig
		}
	}

	if len(it.ShippingInfo) > 0 {
		si := it.ShippingInfo[0]
		cost, _ := firstMoney(si.ShippingServiceCost)
		p.Shipping = &models.Shipping{
			Cost: cost,
			Free: cost == 0 || strings.EqualFold(first(si.ShippingType), "Free"),
		}
	}

	if len(it.SellerInfo) > 0 {
		si := it.SellerInfo[0]
		p.Seller = &models.Seller{
			Name: first(si.SellerUserName),
			// Feedback percent rescaled from 0-100 to a 0-5 rating.
			Rating: platforms.ParsePrice(first(si.PositiveFeedbackPercent)) / 20,
		}
	}

	return p
}

func parseCondition(it findingItem) models.Condition {
	if len(it.Condition) == 0 {
		return models.ConditionNew
	}
	name := strings.ToLower(first(it.Condition[0].ConditionDisplayName))
	switch {
	case strings.Contains(name, "refurb"):
		return models.ConditionRefurbished
	case strings.Contains(name, "used") || strings.Contains(name, "pre-owned"):
		return models.ConditionUsed
	default:
		return models.ConditionNew
	}
}
