package palette

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// postService implements app.PostService and app.LikeService using the
// Palette API.
type postService struct {
	client        *Client
	currentUserID string
}

// NewPostService creates a PostService backed by the Palette API.
func NewPostService(client *Client, currentUserID string) *postService {
	return &postService{client: client, currentUserID: currentUserID}
}

func (s *postService) CreateText(ctx context.Context, content string) (domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}
	if utf8.RuneCountInString(content) > domain.MaxPostLength {
		return domain.Post{}, domain.ErrPostTooLong
	}

	data, err := s.client.Post(ctx, "/api/posts", map[string]string{"content": content})
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	w, err := decodePost(data)
	if err != nil {
		return domain.Post{}, fmt.Errorf("parsing created post: %w", err)
	}
	if w.Type == "" {
		w.Type = string(domain.KindText)
	}
	p := mapPost(w, s.currentUserID)
	if p.AuthorID == "" {
		p.AuthorID = s.currentUserID
		p.IsOwn = s.currentUserID != ""
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id string) error {
	_, err := s.client.Delete(ctx, "/api/posts/"+url.PathEscape(id))
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

// ToggleLike flips the caller's like on an OOTD post. The acting user is
// implied by the bearer token.
func (s *postService) ToggleLike(ctx context.Context, id string) (domain.LikeState, error) {
	data, err := s.client.Post(ctx, "/api/ootd/"+url.PathEscape(id)+"/like", nil)
	if err != nil {
		return domain.LikeState{}, fmt.Errorf("toggling like: %w", err)
	}
	var state domain.LikeState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.LikeState{}, fmt.Errorf("parsing like response: %w", err)
	}
	state.LikesCount = max(state.LikesCount, 0)
	return state, nil
}
