package palette

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HyunSeo88/palette-sub001/app"
)

// accountService implements app.AccountService using the Palette API.
type accountService struct {
	client *Client
}

// NewAccountService creates an AccountService backed by the Palette API.
func NewAccountService(client *Client) *accountService {
	return &accountService{client: client}
}

type wireProfile struct {
	MongoID  string `json:"_id"`
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

func (w wireProfile) toProfile() app.Profile {
	id := w.MongoID
	if id == "" {
		id = w.ID
	}
	return app.Profile{
		ID:       sanitizeForTerminal(id),
		Nickname: sanitizeForTerminal(w.Nickname),
		Email:    sanitizeForTerminal(w.Email),
	}
}

func (s *accountService) CurrentUser(ctx context.Context) (app.Profile, error) {
	data, err := s.client.Get(ctx, "/api/auth/me")
	if err != nil {
		return app.Profile{}, fmt.Errorf("fetching current user: %w", err)
	}
	var env struct {
		User *wireProfile `json:"user"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return app.Profile{}, fmt.Errorf("parsing current user: %w", err)
	}
	if env.User != nil {
		return env.User.toProfile(), nil
	}
	var w wireProfile
	if err := json.Unmarshal(data, &w); err != nil {
		return app.Profile{}, fmt.Errorf("parsing current user: %w", err)
	}
	return w.toProfile(), nil
}
