package petition

import (
	"time"

	id "cleanslate/pkg/domain"
)

// DocumentTemplate is a stored petition document body. Petitions render by
// filling a template with the client, attorney, cases, and filing date. One
// template per kind is flagged as the default; new user profiles adopt the
// defaults.
type DocumentTemplate struct {
	ID        id.TemplateID `json:"id"`
	Name      string        `json:"name"`
	Kind      Kind          `json:"kind"`
	Body      string        `json:"body"`
	Default   bool          `json:"default"`
	CreatedAt time.Time     `json:"created_at"`
}
