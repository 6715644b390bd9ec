package domain

import (
	"slices"
	"time"
)

// MaxPostLength is the character limit for text posts and captions.
const MaxPostLength = 500

// PostKind is the category of a Palette post.
type PostKind string

const (
	KindOOTD  PostKind = "ootd"
	KindText  PostKind = "text"
	KindPoll  PostKind = "poll"
	KindEvent PostKind = "event"
)

// Post is a single Palette post as held in the client caches.
type Post struct {
	ID            string
	AuthorID      string
	Author        string // Display name, falls back to Username
	Username      string
	Kind          PostKind
	Content       string // Caption for OOTD posts, body otherwise
	ImageURL      string
	LikedUserIDs  []string
	LikesCount    int
	CommentsCount int
	CreatedAt     time.Time
	IsOwn         bool // True if this post belongs to the authenticated user
}

// LikedBy reports whether userID is in the post's liked set.
func (p Post) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	return slices.Contains(p.LikedUserIDs, userID)
}

// Clone returns a copy that shares no backing arrays with p.
func (p Post) Clone() Post {
	p.LikedUserIDs = slices.Clone(p.LikedUserIDs)
	return p
}

// LikeState is the server's authoritative answer to a like toggle.
type LikeState struct {
	LikesCount         int  `json:"likesCount"`
	LikedByCurrentUser bool `json:"likedByCurrentUser"`
}
