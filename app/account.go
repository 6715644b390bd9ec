package app

import "context"

// Profile is the authenticated Palette user.
type Profile struct {
	ID       string
	Nickname string
	Email    string
}

// AccountService provides information about the authenticated user.
type AccountService interface {
	// CurrentUser returns the profile behind the active token.
	CurrentUser(ctx context.Context) (Profile, error)
}
