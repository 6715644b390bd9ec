// Package store holds the client-side post caches: the feed list, the top
// posts and the post open in the detail view. Each cache keeps its own copy
// of a post; the same id may appear in all three with different contents.
package store

import (
	"sync"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// Snapshot is a value copy of every cache plus the last recorded error.
type Snapshot struct {
	List   []domain.Post
	Top    []domain.Post
	Detail *domain.Post
	Err    string
}

// Clone deep-copies the snapshot so later mutations cannot leak into it.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		List: clonePosts(s.List),
		Top:  clonePosts(s.Top),
		Err:  s.Err,
	}
	if s.Detail != nil {
		d := s.Detail.Clone()
		out.Detail = &d
	}
	return out
}

// Find returns every cached copy of postID, list first, then top, then detail.
func (s Snapshot) Find(postID string) []domain.Post {
	var out []domain.Post
	for _, p := range s.List {
		if p.ID == postID {
			out = append(out, p)
		}
	}
	for _, p := range s.Top {
		if p.ID == postID {
			out = append(out, p)
		}
	}
	if s.Detail != nil && s.Detail.ID == postID {
		out = append(out, *s.Detail)
	}
	return out
}

func clonePosts(in []domain.Post) []domain.Post {
	if in == nil {
		return nil
	}
	out := make([]domain.Post, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}

// PostStore is the shared, mutex-guarded cache owner. Every read returns a
// deep copy and every write stores one, so callers can treat snapshots as
// immutable values.
type PostStore struct {
	mu   sync.RWMutex
	snap Snapshot
}

// New creates an empty store.
func New() *PostStore {
	return &PostStore{}
}

// Snapshot returns a deep copy of the current state.
func (s *PostStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Replace swaps in next verbatim.
func (s *PostStore) Replace(next Snapshot) {
	next = next.Clone()
	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()
}

// Update applies fn atomically and returns the stored result.
func (s *PostStore) Update(fn func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = fn(s.snap.Clone()).Clone()
	return s.snap.Clone()
}

// SetList replaces the feed list cache.
func (s *PostStore) SetList(posts []domain.Post) {
	s.Update(func(cur Snapshot) Snapshot {
		cur.List = posts
		return cur
	})
}

// AppendList adds an older page to the feed list, skipping ids already present.
func (s *PostStore) AppendList(posts []domain.Post) {
	s.Update(func(cur Snapshot) Snapshot {
		seen := make(map[string]struct{}, len(cur.List))
		for _, p := range cur.List {
			seen[p.ID] = struct{}{}
		}
		for _, p := range posts {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			cur.List = append(cur.List, p)
		}
		return cur
	})
}

// SetTop replaces the top posts cache.
func (s *PostStore) SetTop(posts []domain.Post) {
	s.Update(func(cur Snapshot) Snapshot {
		cur.Top = posts
		return cur
	})
}

// SetDetail replaces the detail cache. nil clears it.
func (s *PostStore) SetDetail(p *domain.Post) {
	s.Update(func(cur Snapshot) Snapshot {
		cur.Detail = p
		return cur
	})
}

// Prepend puts a freshly created post at the top of the feed list.
func (s *PostStore) Prepend(p domain.Post) {
	s.Update(func(cur Snapshot) Snapshot {
		cur.List = append([]domain.Post{p}, cur.List...)
		return cur
	})
}

// Remove drops postID from every cache.
func (s *PostStore) Remove(postID string) {
	s.Update(func(cur Snapshot) Snapshot {
		return RemovePost(cur, postID)
	})
}

// Take drops postID from every cache and returns what Restore needs to
// undo it.
func (s *PostStore) Take(postID string) Removed {
	var r Removed
	s.Update(func(cur Snapshot) Snapshot {
		var next Snapshot
		next, r = TakePost(cur, postID)
		return next
	})
	return r
}

// Restore re-inserts a post removed by Take into the current caches.
func (s *PostStore) Restore(r Removed) {
	s.Update(func(cur Snapshot) Snapshot {
		return RestorePost(cur, r)
	})
}

// SetErr records a user-visible error message. Empty clears it.
func (s *PostStore) SetErr(msg string) {
	s.Update(func(cur Snapshot) Snapshot {
		cur.Err = msg
		return cur
	})
}

// Err returns the recorded error message, if any.
func (s *PostStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Err
}
