package domain

import "time"

// HeroSlide is one entry of the homepage carousel. Position is unique
// across all slides and drives display order.
type HeroSlide struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl"`
	LinkURL     string    `json:"linkUrl,omitempty"`
	Position    int       `json:"position"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}
