package amazon

import (
	"stylehunt/pkg/models"
	"stylehunt/pkg/platforms"
)

type searchItemsResponse struct {
	SearchResult struct {
		TotalResultCount int         `json:"TotalResultCount"`
		Items            []paapiItem `json:"Items"`
	} `json:"SearchResult"`
}

type paapiItem struct {
	ASIN          string `json:"ASIN"`
	DetailPageURL string `json:"DetailPageURL"`
	ItemInfo      struct {
		Title struct {
			DisplayValue string `json:"DisplayValue"`
		} `json:"Title"`
		ByLineInfo struct {
			Brand struct {
				DisplayValue string `json:"DisplayValue"`
			} `json:"Brand"`
		} `json:"ByLineInfo"`
		Features struct {
			DisplayValues []string `json:"DisplayValues"`
		} `json:"Features"`
	} `json:"ItemInfo"`
	Images struct {
		Primary struct {
			Large struct {
				URL string `json:"URL"`
			} `json:"Large"`
		} `json:"Primary"`
	} `json:"Images"`
	Offers struct {
		Listings []paapiListing `json:"Listings"`
	} `json:"Offers"`
	CustomerReviews struct {
		StarRating struct {
			Value float64 `json:"Value"`
		} `json:"StarRating"`
		Count int `json:"Count"`
	} `json:"CustomerReviews"`
}

type paapiListing struct {
	Price struct {
		Amount   float64 `json:"Amount"`
		Currency string  `json:"Currency"`
	} `json:"Price"`
	SavingBasis struct {
		Amount float64 `json:"Amount"`
	} `json:"SavingBasis"`
	DeliveryInfo struct {
		IsFreeShippingEligible bool `json:"IsFreeShippingEligible"`
	} `json:"DeliveryInfo"`
}

func (it paapiItem) normalize() models.ExternalProduct {
	title := it.ItemInfo.Title.DisplayValue

	brand := it.ItemInfo.ByLineInfo.Brand.DisplayValue
	if brand == "" {
		brand = platforms.InferBrand(title)
	}

	description := ""
	if len(it.ItemInfo.Features.DisplayValues) > 0 {
		description = it.ItemInfo.Features.DisplayValues[0]
	}

	p := models.ExternalProduct{
		ID:          it.ASIN,
		Title:       title,
		Description: description,
		Currency:    "USD",
		ImageURL:    platforms.OrPlaceholder(it.Images.Primary.Large.URL),
		ProductURL:  it.DetailPageURL,
		Platform:    models.PlatformAmazon,
		Brand:       brand,
		Condition:   models.ConditionNew,
		Rating:      it.CustomerReviews.StarRating.Value,
		ReviewCount: it.CustomerReviews.Count,
	}

	if len(it.Offers.Listings) > 0 {
		l := it.Offers.Listings[0]
		p.Price = l.Price.Amount
		if l.Price.Currency != "" {
			p.Currency = l.Price.Currency
		}
		if l.SavingBasis.Amount > p.Price {
			p.OriginalPrice = l.SavingBasis.Amount
		}
		p.Shipping = &models.Shipping{Free: l.DeliveryInfo.IsFreeShippingEligible}
	}

	return p
}
