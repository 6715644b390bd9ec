//go:build smoke

package palette

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

type envToken struct{}

func (envToken) AccessToken() (string, error) {
	tok := strings.TrimSpace(os.Getenv("PALETTE_TOKEN"))
	if tok == "" {
		return "", fmt.Errorf("PALETTE_TOKEN is empty")
	}
	return tok, nil
}

func smokeClient(t *testing.T) *Client {
	t.Helper()
	base := strings.TrimSpace(os.Getenv("PALETTE_API_URL"))
	if base == "" {
		t.Skip("PALETTE_API_URL not set")
	}
	if strings.TrimSpace(os.Getenv("PALETTE_TOKEN")) == "" {
		t.Skip("PALETTE_TOKEN not set")
	}
	return NewClient(base, envToken{}, WithTimeout(10*time.Second))
}

func TestSmoke_FetchFeedTopAndDetail(t *testing.T) {
	client := smokeClient(t)
	feed := NewFeedService(client, "")

	posts, err := feed.FetchFeed(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if len(posts) > 0 {
		if _, err := feed.FetchPost(context.Background(), posts[0].ID); err != nil {
			t.Fatalf("detail fetch failed: %v", err)
		}
	}
	if _, err := feed.FetchTop(context.Background(), 5); err != nil {
		t.Fatalf("top failed: %v", err)
	}
}

func TestSmoke_LikeRoundtrip_OptIn(t *testing.T) {
	if os.Getenv("SMOKE_ALLOW_MUTATION") != "true" {
		t.Skip("SMOKE_ALLOW_MUTATION=true required")
	}
	client := smokeClient(t)
	posts, err := NewFeedService(client, "").FetchFeed(context.Background(), 1, 1)
	if err != nil || len(posts) == 0 {
		t.Skipf("no post to like: %v", err)
	}

	svc := NewPostService(client, "")
	first, err := svc.ToggleLike(context.Background(), posts[0].ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	second, err := svc.ToggleLike(context.Background(), posts[0].ID)
	if err != nil {
		t.Fatalf("toggle back failed: %v", err)
	}
	if first.LikedByCurrentUser == second.LikedByCurrentUser {
		t.Fatalf("expected toggle to flip state: %+v then %+v", first, second)
	}
}
