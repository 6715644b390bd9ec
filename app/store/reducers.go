package store

import (
	"slices"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// ToggleLocal flips userID's like on every cached copy of postID. Each copy
// decides its own direction from its own liked set; the count moves in
// lockstep and never drops below zero.
func ToggleLocal(s Snapshot, postID, userID string) Snapshot {
	return mapPost(s, postID, func(p domain.Post) domain.Post {
		if p.LikedBy(userID) {
			p.LikedUserIDs = without(p.LikedUserIDs, userID)
			if p.LikesCount > 0 {
				p.LikesCount--
			}
			return p
		}
		p.LikedUserIDs = append(p.LikedUserIDs, userID)
		p.LikesCount++
		return p
	})
}

// ApplyServerLike reconciles every cached copy of postID with the server:
// the count is replaced and only userID's membership is forced to match.
func ApplyServerLike(s Snapshot, postID, userID string, state domain.LikeState) Snapshot {
	return mapPost(s, postID, func(p domain.Post) domain.Post {
		p.LikesCount = max(state.LikesCount, 0)
		liked := p.LikedBy(userID)
		switch {
		case state.LikedByCurrentUser && !liked:
			p.LikedUserIDs = append(p.LikedUserIDs, userID)
		case !state.LikedByCurrentUser && liked:
			p.LikedUserIDs = without(p.LikedUserIDs, userID)
		}
		return p
	})
}

// ApplyLikeCount sets a pushed count on every copy of postID without
// touching anyone's membership.
func ApplyLikeCount(s Snapshot, postID string, count int) Snapshot {
	return mapPost(s, postID, func(p domain.Post) domain.Post {
		p.LikesCount = max(count, 0)
		return p
	})
}

// RemovePost drops postID from the list and top caches and clears the
// detail cache if it holds that post.
func RemovePost(s Snapshot, postID string) Snapshot {
	s = s.Clone()
	s.List = slices.DeleteFunc(s.List, func(p domain.Post) bool { return p.ID == postID })
	s.Top = slices.DeleteFunc(s.Top, func(p domain.Post) bool { return p.ID == postID })
	if s.Detail != nil && s.Detail.ID == postID {
		s.Detail = nil
	}
	return s
}

func mapPost(s Snapshot, postID string, fn func(domain.Post) domain.Post) Snapshot {
	s = s.Clone()
	for i := range s.List {
		if s.List[i].ID == postID {
			s.List[i] = fn(s.List[i])
		}
	}
	for i := range s.Top {
		if s.Top[i].ID == postID {
			s.Top[i] = fn(s.Top[i])
		}
	}
	if s.Detail != nil && s.Detail.ID == postID {
		d := fn(*s.Detail)
		s.Detail = &d
	}
	return s
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Removed remembers where a post sat in each cache so it can be put back.
// An index of -1 means the post was not in that cache.
type Removed struct {
	PostID    string
	List      *domain.Post
	ListIndex int
	Top       *domain.Post
	TopIndex  int
	Detail    *domain.Post
}

// TakePost removes postID like RemovePost and records what was removed.
func TakePost(s Snapshot, postID string) (Snapshot, Removed) {
	r := Removed{PostID: postID, ListIndex: -1, TopIndex: -1}
	if i := slices.IndexFunc(s.List, func(p domain.Post) bool { return p.ID == postID }); i >= 0 {
		p := s.List[i].Clone()
		r.List, r.ListIndex = &p, i
	}
	if i := slices.IndexFunc(s.Top, func(p domain.Post) bool { return p.ID == postID }); i >= 0 {
		p := s.Top[i].Clone()
		r.Top, r.TopIndex = &p, i
	}
	if s.Detail != nil && s.Detail.ID == postID {
		p := s.Detail.Clone()
		r.Detail = &p
	}
	return RemovePost(s, postID), r
}

// RestorePost puts a taken post back into the current snapshot. Everything
// else in s is left as it is. Caches that already hold the post again are
// skipped, and the detail slot is only refilled while it is empty.
func RestorePost(s Snapshot, r Removed) Snapshot {
	s = s.Clone()
	if r.List != nil {
		s.List = reinsert(s.List, *r.List, r.ListIndex)
	}
	if r.Top != nil {
		s.Top = reinsert(s.Top, *r.Top, r.TopIndex)
	}
	if r.Detail != nil && s.Detail == nil {
		d := r.Detail.Clone()
		s.Detail = &d
	}
	return s
}

func reinsert(posts []domain.Post, p domain.Post, at int) []domain.Post {
	if slices.ContainsFunc(posts, func(q domain.Post) bool { return q.ID == p.ID }) {
		return posts
	}
	at = min(max(at, 0), len(posts))
	return slices.Insert(posts, at, p.Clone())
}
