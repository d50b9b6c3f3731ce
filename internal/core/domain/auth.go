package domain

import "time"

// AccessToken maps a hashed bearer token to the marketplace user acting
// through the API.
type AccessToken struct {
	TokenHash string
	UserID    UserID
	Name      string
	Active    bool
	CreatedAt time.Time
}
