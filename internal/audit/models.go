// Package audit keeps an append-only trail of the actions a user takes on
// their record: uploads, searches, petition generation. The trail backs the
// activity endpoint and gives operators something to reconstruct from.
package audit

import (
	"time"

	id "cleanslate/pkg/domain"
)

// Event is emitted from the request path to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	UserID    id.UserID `json:"-"`
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	Detail    string    `json:"detail,omitempty"`
}
