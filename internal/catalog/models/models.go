// Package models holds the catalog entities: tags and learning resources.
package models

import "time"

// Tag is a catalog label. ExternalID is the identifier assigned by the feed
// that owns the catalog; it is the idempotency key for sync upserts.
type Tag struct {
	ID         int64  `json:"id"`
	ExternalID int64  `json:"external_id"`
	Label      string `json:"tag"`
}

// Resource is a catalog entry. Tags carries the resolved tag labels and
// AverageRating the mean user rating, nil when nobody has rated it yet. Both
// are projections filled by the catalog service, not stored columns.
type Resource struct {
	ID            int64      `json:"id"`
	ExternalID    int64      `json:"external_id"`
	Author        string     `json:"author"`
	Name          string     `json:"name"`
	URL           string     `json:"url"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	Tags          []string   `json:"tags"`
	AverageRating *float64   `json:"average_rating"`
}
