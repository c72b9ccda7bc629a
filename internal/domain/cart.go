package domain

import "time"

// CartLine is a single line in a cart. For a guest cart the ID is derived
// from (ProductID, SelectedSize); for an authenticated cart it is the
// cart_items row id. Display attributes are snapshotted from the catalog
// when the line is created or refreshed.
type CartLine struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price"`
	ImageURL     string    `json:"imageUrl"`
	Quantity     int       `json:"quantity"`
	SelectedSize string    `json:"selectedSize,omitempty"`
	Slug         string    `json:"slug,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

// Key identifies the line within its cart: no two lines of one cart share
// the same (productId, selectedSize) pair.
func (l CartLine) Key() string {
	if l.SelectedSize == "" {
		return l.ProductID
	}
	return l.ProductID + "-" + l.SelectedSize
}

// CartTotalCents sums unit price times quantity over all lines.
func CartTotalCents(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.PriceCents * int64(l.Quantity)
	}
	return total
}

// CartItemCount sums quantities over all lines.
func CartItemCount(lines []CartLine) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// CartRow is an authenticated cart line joined with its product and owner,
// as listed by the admin back-office.
type CartRow struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName,omitempty"`
	UserEmail       string    `json:"userEmail"`
	ProductID       string    `json:"productId"`
	ProductName     string    `json:"productName"`
	ProductPrice    int64     `json:"productPrice"`
	ProductImageURL string    `json:"productImageUrl"`
	ProductSlug     string    `json:"productSlug"`
	Quantity        int       `json:"quantity"`
	SelectedSize    string    `json:"selectedSize,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
