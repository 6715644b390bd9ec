package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HyunSeo88/palette-sub001/domain"
)

type staticToken string

func (s staticToken) AccessToken() (string, error) { return string(s), nil }

var upgrader = websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func receive(t *testing.T, ch <-chan LikeUpdate) LikeUpdate {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "updates closed early")
		return u
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for like update")
	}
	return LikeUpdate{}
}

func TestSubscriber_DeliversLikeFrames(t *testing.T) {
	var gotToken atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken.Store(r.URL.Query().Get("token"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(map[string]any{"type": "connected", "data": map[string]string{"status": "connected"}})
		_ = conn.WriteJSON(map[string]any{"type": "like_update", "data": map[string]any{"postId": "p1", "likesCount": 12}})
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"like_update","data":{"postId":"p2"}}`))
		_ = conn.WriteJSON(map[string]any{"type": "post_like_updated", "data": map[string]any{"post_id": 77, "like_count": -2}})
		// hold the connection until the client goes away
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sub := NewSubscriber(wsURL(srv), staticToken("tok"), nil)
	done := make(chan error, 1)
	go func() { done <- sub.Run(ctx) }()

	assert.Equal(t, LikeUpdate{PostID: "p1", LikesCount: 12}, receive(t, sub.Updates()))
	assert.Equal(t, LikeUpdate{PostID: "77", LikesCount: 0}, receive(t, sub.Updates()))
	assert.Equal(t, "tok", gotToken.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	_, open := <-sub.Updates()
	assert.False(t, open, "updates must be closed after Run returns")
}

func TestSubscriber_ReconnectsAfterDrop(t *testing.T) {
	var conns atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := conns.Add(1)
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(map[string]any{"type": "like_update", "data": map[string]any{"postId": "p1", "likesCount": int(n)}})
		if n > 1 {
			_, _, _ = conn.ReadMessage()
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := NewSubscriber(wsURL(srv), staticToken("tok"), nil)
	sub.minBackoff = 10 * time.Millisecond
	sub.maxBackoff = 20 * time.Millisecond
	go func() { _ = sub.Run(ctx) }()

	assert.Equal(t, 1, receive(t, sub.Updates()).LikesCount)
	assert.Equal(t, 2, receive(t, sub.Updates()).LikesCount)
}

func TestSubscriber_StopsOnUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	sub := NewSubscriber(wsURL(srv), staticToken("bad"), nil)
	err := sub.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseLikeFrame(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want LikeUpdate
		ok   bool
	}{
		{"like update", `{"type":"like_update","data":{"postId":"a","likesCount":3}}`, LikeUpdate{"a", 3}, true},
		{"legacy numeric id", `{"type":"post_like_updated","data":{"post_id":9,"like_count":1}}`, LikeUpdate{"9", 1}, true},
		{"other type", `{"type":"new_message","data":{"postId":"a","likesCount":3}}`, LikeUpdate{}, false},
		{"missing count", `{"type":"like_update","data":{"postId":"a"}}`, LikeUpdate{}, false},
		{"missing id", `{"type":"like_update","data":{"likesCount":3}}`, LikeUpdate{}, false},
		{"data not object", `{"type":"like_update","data":"x"}`, LikeUpdate{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f frame
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			got, ok := parseLikeFrame(f)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
