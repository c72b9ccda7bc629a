package domain

import "time"

type Supplier struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
