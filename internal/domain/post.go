package domain

import "time"

// Post is a blog entry. AuthorName is joined from users at read time.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Published  bool      `json:"published"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
