package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Session is the result of a successful password login.
type Session struct {
	Token    string
	UserID   string
	Nickname string
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	User    struct {
		MongoID  string `json:"_id"`
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
	} `json:"user"`
}

// Login exchanges email and password for a bearer token and stores it at
// tokenPath.
func Login(ctx context.Context, apiURL, email, password, tokenPath string) (Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, errors.New("email and password are required")
	}

	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return Session{}, fmt.Errorf("encoding login request: %w", err)
	}

	endpoint := strings.TrimRight(apiURL, "/") + "/api/auth/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Session{}, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 15 * time.Second}).Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("logging in: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Session{}, fmt.Errorf("reading login response: %w", err)
	}

	var lr loginResponse
	_ = json.Unmarshal(data, &lr)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(lr.Message)
		if detail == "" {
			detail = strings.TrimSpace(string(data))
		}
		return Session{}, fmt.Errorf("login failed: %d %s", resp.StatusCode, detail)
	}
	if strings.TrimSpace(lr.Token) == "" {
		return Session{}, errors.New("login response missing token")
	}

	s := Session{Token: strings.TrimSpace(lr.Token), UserID: lr.User.MongoID, Nickname: lr.User.Nickname}
	if s.UserID == "" {
		s.UserID = lr.User.ID
	}
	if s.UserID == "" {
		if id, err := ActorFromToken(s.Token); err == nil {
			s.UserID = id
		}
	}

	if err := WriteToken(tokenPath, s.Token); err != nil {
		return Session{}, err
	}
	return s, nil
}

// ValidateToken reports whether the API still accepts token. A 401 is a
// clean "no"; other failures are errors.
func ValidateToken(ctx context.Context, apiURL, token string) (bool, error) {
	endpoint := strings.TrimRight(apiURL, "/") + "/api/auth/me"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("creating token validation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	if err != nil {
		return false, fmt.Errorf("validating token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return false, fmt.Errorf("token validation failed: %d %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return true, nil
}
