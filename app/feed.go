package app

import (
	"context"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// FeedService fetches posts for the three cached views.
type FeedService interface {
	// FetchFeed returns one page of the OOTD feed, newest first. Pages start at 1.
	FetchFeed(ctx context.Context, page, limit int) ([]domain.Post, error)

	// FetchTop returns the most liked posts.
	FetchTop(ctx context.Context, limit int) ([]domain.Post, error)

	// FetchPost returns a single post for the detail view.
	FetchPost(ctx context.Context, id string) (domain.Post, error)
}
