// Package realtime listens on the API websocket for like counts pushed by
// other users' actions.
package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/HyunSeo88/palette-sub001/domain"
	"github.com/HyunSeo88/palette-sub001/infra/auth"
)

// LikeUpdate is a pushed like count for one post.
type LikeUpdate struct {
	PostID     string
	LikesCount int
}

// frame is the envelope every websocket message arrives in.
type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Subscriber keeps a websocket open and turns like frames into LikeUpdates.
type Subscriber struct {
	url        string
	tokens     auth.TokenProvider
	dialer     *websocket.Dialer
	logger     *zap.Logger
	updates    chan LikeUpdate
	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewSubscriber creates a subscriber for wsURL. A nil logger disables logging.
func NewSubscriber(wsURL string, tp auth.TokenProvider, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{
		url:        wsURL,
		tokens:     tp,
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		logger:     logger,
		updates:    make(chan LikeUpdate, 64),
		minBackoff: 500 * time.Millisecond,
		maxBackoff: 30 * time.Second,
	}
}

// Updates delivers like counts. It is closed when Run returns.
func (s *Subscriber) Updates() <-chan LikeUpdate { return s.updates }

// Run connects and reconnects with bounded backoff until ctx is done or the
// server rejects the token.
func (s *Subscriber) Run(ctx context.Context) error {
	defer close(s.updates)

	backoff := s.minBackoff
	for {
		connected, err := s.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, domain.ErrUnauthorized) {
			s.logger.Warn("realtime disabled", zap.Error(err))
			return err
		}
		if connected {
			backoff = s.minBackoff
		}
		s.logger.Debug("realtime disconnected", zap.Error(err), zap.Duration("retry_in", backoff))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, s.maxBackoff)
	}
}

// session runs one connection until it drops. connected reports whether the
// handshake succeeded.
func (s *Subscriber) session(ctx context.Context) (connected bool, err error) {
	endpoint, err := s.endpoint()
	if err != nil {
		return false, err
	}

	conn, resp, err := s.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return false, fmt.Errorf("websocket handshake: %w", domain.ErrUnauthorized)
		}
		return false, fmt.Errorf("dialing websocket: %w", err)
	}
	defer conn.Close()
	s.logger.Info("realtime connected")

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return true, fmt.Errorf("reading frame: %w", err)
		}
		update, ok := parseLikeFrame(f)
		if !ok {
			continue
		}
		select {
		case s.updates <- update:
		case <-ctx.Done():
			return true, ctx.Err()
		}
	}
}

func (s *Subscriber) endpoint() (string, error) {
	token, err := s.tokens.AccessToken()
	if err != nil {
		return "", fmt.Errorf("auth: %w", err)
	}
	u, err := url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("parsing websocket url: %w", err)
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// parseLikeFrame accepts "like_update" frames ({postId, likesCount}) and the
// older "post_like_updated" shape ({post_id, like_count}).
func parseLikeFrame(f frame) (LikeUpdate, bool) {
	var data struct {
		PostID     json.RawMessage `json:"postId"`
		LikesCount *int            `json:"likesCount"`
		LegacyID   json.RawMessage `json:"post_id"`
		LegacyLike *int            `json:"like_count"`
	}
	switch f.Type {
	case "like_update", "post_like_updated":
	default:
		return LikeUpdate{}, false
	}
	if err := json.Unmarshal(f.Data, &data); err != nil {
		return LikeUpdate{}, false
	}

	id := rawID(data.PostID)
	if id == "" {
		id = rawID(data.LegacyID)
	}
	count := data.LikesCount
	if count == nil {
		count = data.LegacyLike
	}
	if id == "" || count == nil {
		return LikeUpdate{}, false
	}
	return LikeUpdate{PostID: id, LikesCount: max(*count, 0)}, true
}

// rawID reads an id sent as either a JSON string or a number.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
	}
	return ""
}
