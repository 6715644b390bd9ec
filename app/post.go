package app

import (
	"context"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// PostService publishes and deletes posts.
type PostService interface {
	// CreateText publishes a new text post.
	CreateText(ctx context.Context, content string) (domain.Post, error)

	// Delete removes a post by ID.
	Delete(ctx context.Context, id string) error
}

// LikeService is the remote like toggle. The acting user is implied by the
// credentials; the returned state is authoritative.
type LikeService interface {
	ToggleLike(ctx context.Context, postID string) (domain.LikeState, error)
}
