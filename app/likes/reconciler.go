// Package likes reconciles optimistic like toggles with the server.
//
// A toggle runs in three phases. Begin snapshots the caches and applies the
// guessed change, Call talks to the server without touching the caches, and
// Settle either commits the server's answer or restores the snapshot. The
// TUI runs Begin and Settle on its event loop and Call in a command
// goroutine; ToggleLike runs all three in sequence.
//
// Overlapping toggles on the same post are not serialized. Each call settles
// against whatever state is current when its response arrives, so the final
// state can depend on arrival order.
package likes

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/HyunSeo88/palette-sub001/app"
	"github.com/HyunSeo88/palette-sub001/app/store"
	"github.com/HyunSeo88/palette-sub001/domain"
)

// Reconciler owns the like toggle protocol for one store.
type Reconciler struct {
	store  *store.PostStore
	api    app.LikeService
	logger *zap.Logger
}

// New creates a reconciler. A nil logger disables logging.
func New(st *store.PostStore, api app.LikeService, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{store: st, api: api, logger: logger}
}

// Pending is an in-flight toggle. It holds the pre-toggle snapshot until
// Settle runs.
type Pending struct {
	PostID string
	UserID string

	before store.Snapshot
	api    app.LikeService
}

// Result is the outcome of the remote call. Exactly one of State or Err is
// meaningful.
type Result struct {
	State domain.LikeState
	Err   error
}

// OK reports whether the remote call succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Begin captures the caches and applies the optimistic toggle to every copy
// of postID. An empty userID fails with domain.ErrMissingActor and leaves
// the store untouched.
func (r *Reconciler) Begin(postID, userID string) (*Pending, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ErrMissingActor
	}

	var before store.Snapshot
	r.store.Update(func(cur store.Snapshot) store.Snapshot {
		before = cur.Clone()
		return store.ToggleLocal(cur, postID, userID)
	})

	r.logger.Debug("like toggle started",
		zap.String("post_id", postID),
		zap.String("user_id", userID),
	)
	return &Pending{PostID: postID, UserID: userID, before: before, api: r.api}, nil
}

// Call performs the remote toggle. It reads no store state and is safe to
// run off the event loop.
func (p *Pending) Call(ctx context.Context) Result {
	state, err := p.api.ToggleLike(ctx, p.PostID)
	if err != nil {
		return Result{Err: err}
	}
	return Result{State: state}
}

// Settle commits a successful result or restores the snapshot taken by
// Begin. On failure the display message is recorded in the store and a
// *domain.RemoteToggleError is returned.
func (r *Reconciler) Settle(p *Pending, res Result) error {
	if res.OK() {
		r.store.Update(func(cur store.Snapshot) store.Snapshot {
			next := store.ApplyServerLike(cur, p.PostID, p.UserID, res.State)
			next.Err = ""
			return next
		})
		r.logger.Debug("like toggle committed",
			zap.String("post_id", p.PostID),
			zap.Int("likes_count", res.State.LikesCount),
			zap.Bool("liked", res.State.LikedByCurrentUser),
		)
		return nil
	}

	toggleErr := domain.NewRemoteToggleError(p.PostID, res.Err)
	restored := p.before.Clone()
	restored.Err = toggleErr.Message
	r.store.Replace(restored)

	r.logger.Warn("like toggle rolled back",
		zap.String("post_id", p.PostID),
		zap.Error(res.Err),
	)
	return toggleErr
}

// ToggleLike runs Begin, Call and Settle back to back.
func (r *Reconciler) ToggleLike(ctx context.Context, postID, userID string) error {
	p, err := r.Begin(postID, userID)
	if err != nil {
		return err
	}
	return r.Settle(p, p.Call(ctx))
}
