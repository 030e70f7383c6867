// Package profile keeps the per-user filing defaults that are unrelated to
// authentication: the attorney block stamped onto petitions and the
// templates the user files with.
package profile

import (
	"time"

	"cleanslate/internal/crecord"
	id "cleanslate/pkg/domain"
)

// UserProfile is one user's filing defaults.
type UserProfile struct {
	UserID              id.UserID        `json:"user_id"`
	Attorney            crecord.Attorney `json:"attorney"`
	ExpungementTemplate id.TemplateID    `json:"expungement_template"`
	SealingTemplate     id.TemplateID    `json:"sealing_template"`
	UpdatedAt           time.Time        `json:"updated_at"`
}
