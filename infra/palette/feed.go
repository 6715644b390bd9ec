package palette

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// feedService implements app.FeedService using the Palette API.
type feedService struct {
	client        *Client
	currentUserID string // Set after init to mark own posts.
}

// NewFeedService creates a FeedService backed by the Palette API.
// Pass currentUserID to mark the user's own posts in the feed.
func NewFeedService(client *Client, currentUserID string) *feedService {
	return &feedService{client: client, currentUserID: currentUserID}
}

func (s *feedService) FetchFeed(ctx context.Context, page, limit int) ([]domain.Post, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	path := fmt.Sprintf("/api/ootd?page=%d&limit=%d", page, limit)
	data, err := s.client.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	list, err := decodePostList(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return mapPosts(list, s.currentUserID), nil
}

func (s *feedService) FetchTop(ctx context.Context, limit int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 10
	}
	data, err := s.client.Get(ctx, fmt.Sprintf("/api/ootd/top?limit=%d", limit))
	if err != nil {
		return nil, fmt.Errorf("fetching top posts: %w", err)
	}
	list, err := decodePostList(data)
	if err != nil {
		return nil, fmt.Errorf("parsing top posts: %w", err)
	}
	return mapPosts(list, s.currentUserID), nil
}

func (s *feedService) FetchPost(ctx context.Context, id string) (domain.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Post{}, fmt.Errorf("invalid post id")
	}
	data, err := s.client.Get(ctx, "/api/ootd/"+url.PathEscape(id))
	if err != nil {
		return domain.Post{}, fmt.Errorf("fetching post: %w", err)
	}
	w, err := decodePost(data)
	if err != nil {
		return domain.Post{}, fmt.Errorf("parsing post: %w", err)
	}
	return mapPost(w, s.currentUserID), nil
}
