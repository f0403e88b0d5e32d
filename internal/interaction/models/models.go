// Package models holds the per-user interaction entities: saved resources and
// ratings. Both are unique per (user, resource) pair.
package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedResource marks a resource as saved by a user.
type SavedResource struct {
	UserID     uuid.UUID
	ResourceID int64
	Saved      bool
	CreatedAt  time.Time
}

// Rating is a user's score for a resource, 1 to 5 inclusive, with an optional
// comment. Upserted on each rate action; a rate without a comment leaves any
// existing comment untouched.
type Rating struct {
	UserID     uuid.UUID
	ResourceID int64
	Rating     int
	Comment    *string
	CreatedAt  time.Time
}

// RateRequest is the POST /resource/rate/{id} body. Rating is a pointer so a
// missing field is distinguishable from zero and rejected.
type RateRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}
