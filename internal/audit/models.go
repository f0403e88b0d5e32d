// Package audit captures structured security/ops events: who did what, from
// where, and how it went. Events fan into a store and, when configured, a
// Kafka topic. Publishing is best-effort and never fails a request.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Action enumerates the audited operations.
type Action string

const (
	ActionRegister    Action = "user.register"
	ActionLogin       Action = "user.login"
	ActionGoogleLogin Action = "user.login.google"
	ActionLogout      Action = "user.logout"
	ActionSyncRun     Action = "catalog.sync"
	ActionUploadData  Action = "catalog.upload"
)

// Outcome of an audited operation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event is one audit record. ActorID is uuid.Nil for unauthenticated or
// system-triggered actions.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    Action    `json:"action"`
	Outcome   Outcome   `json:"outcome"`
	ActorID   uuid.UUID `json:"actor_id,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
