package domain

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested post no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrPostTooLong indicates the post exceeds the character limit.
	ErrPostTooLong = errors.New("post exceeds character limit")

	// ErrEmptyPost indicates the user submitted an empty post.
	ErrEmptyPost = errors.New("post cannot be empty")

	// ErrMissingActor indicates a like toggle was attempted without a signed-in user.
	ErrMissingActor = errors.New("missing acting user: sign in to like posts")
)

// DefaultToggleMessage is shown when a failed like toggle carries no server message.
const DefaultToggleMessage = "Failed to update like. Please try again."

// RemoteToggleError is returned when the like toggle call failed and the
// optimistic change was rolled back. It is safe to retry.
type RemoteToggleError struct {
	PostID  string
	Message string // Display text for the status line
	Err     error
}

// NewRemoteToggleError builds a RemoteToggleError, preferring the server's
// message and falling back to DefaultToggleMessage. Transport errors with
// no server message never show their raw text; it stays in Err for logs.
func NewRemoteToggleError(postID string, err error) *RemoteToggleError {
	msg := ""
	var m interface{ UserMessage() string }
	if errors.As(err, &m) {
		msg = strings.TrimSpace(m.UserMessage())
	}
	if msg == "" {
		msg = DefaultToggleMessage
	}
	return &RemoteToggleError{PostID: postID, Message: msg, Err: err}
}

func (e *RemoteToggleError) Error() string {
	if e.Err == nil {
		return "toggling like on " + e.PostID + ": " + e.Message
	}
	return "toggling like on " + e.PostID + ": " + e.Err.Error()
}

func (e *RemoteToggleError) Unwrap() error { return e.Err }
