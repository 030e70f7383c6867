// Package auth manages user accounts and login tokens.
package auth

import (
	"time"

	id "cleanslate/pkg/domain"
)

// User is one account.
type User struct {
	ID           id.UserID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
