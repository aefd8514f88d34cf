package model

import "time"

// ShortLink binds a slug to its target URL, the owning user (empty for
// anonymous links) and a click counter.
type ShortLink struct {
	ID        string    `json:"id"`
	TargetURL string    `json:"full_url"`
	Slug      string    `json:"short_url"`
	Clicks    int64     `json:"clicks"`
	UserID    string    `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLink is the per-link view returned by the user dashboard listing.
type UserLink struct {
	ID        string `json:"id"`
	ShortURL  string `json:"short_url"`
	TargetURL string `json:"full_url"`
	Clicks    int64  `json:"clicks"`
}
