// Package audit keeps a trail of user-record mutations: who changed which
// record, when, under which request. Append failures never fail the mutation
// they describe.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the trail.
const (
	ActionUserCreated = "user.created"
	ActionUserUpdated = "user.updated"
	ActionUserDeleted = "user.deleted"
)

// AnonymousActor attributes unauthenticated mutations.
const AnonymousActor = "anonymous"

// Event is one recorded mutation.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	SubjectID string    `json:"subject_id"`
	Actor     string    `json:"actor"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}
