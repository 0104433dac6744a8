package search

import (
	"sort"

	"stylehunt/pkg/models"
)

// The selectors below are pure: they copy before sorting and never touch
// their input, so the same list can be run through all of them.

// GetBestDeals returns the count cheapest products with a real price.
func GetBestDeals(products []models.ExternalProduct, count int) []models.ExternalProduct {
	var priced []models.ExternalProduct
	for _, p := range products {
		if p.Price > 0 {
			priced = append(priced, p)
		}
	}
	sort.SliceStable(priced, func(i, j int) bool {
		return priced[i].Price < priced[j].Price
	})
	return truncate(priced, count)
}

// GetBiggestDiscounts returns the count products with the largest percentage
// drop from their original price. Products without a valid strike-through
// price (OriginalPrice <= Price) are skipped.
func GetBiggestDiscounts(products []models.ExternalProduct, count int) []models.ExternalProduct {
	var discounted []models.ExternalProduct
	for _, p := range products {
		if p.Discounted() {
			discounted = append(discounted, p)
		}
	}
	sort.SliceStable(discounted, func(i, j int) bool {
		return discounted[i].DiscountPercent() > discounted[j].DiscountPercent()
	})
	return truncate(discounted, count)
}

// GetTopRatedProducts returns the count highest-rated products, review count
// breaking ties. Unrated products are skipped.
func GetTopRatedProducts(products []models.ExternalProduct, count int) []models.ExternalProduct {
	var rated []models.ExternalProduct
	for _, p := range products {
		if p.Rating > 0 {
			rated = append(rated, p)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		if rated[i].Rating != rated[j].Rating {
			return rated[i].Rating > rated[j].Rating
		}
		return rated[i].ReviewCount > rated[j].ReviewCount
	})
	return truncate(rated, count)
}

func truncate(products []models.ExternalProduct, count int) []models.ExternalProduct {
	if count < 0 {
		count = 0
	}
	if len(products) > count {
		products = products[:count]
	}
	return products
}
