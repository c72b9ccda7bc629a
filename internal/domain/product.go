package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Stock       int       `json:"stock"`
	ImageURLs   []string  `json:"imageUrls"`
	Sizes       []string  `json:"sizes"`
	SizeStocks  []int     `json:"sizeStocks"`
	CategoryID  string    `json:"categoryId"`
	SupplierID  *string   `json:"supplierId,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Supplier    *Supplier `json:"supplier,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FirstImageURL returns the lead product image, or empty when none exist.
func (p Product) FirstImageURL() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}
