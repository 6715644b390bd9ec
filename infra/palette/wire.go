package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// wireUser is a user reference. The API sends either a bare id string or a
// populated object, depending on the endpoint.
type wireUser struct {
	ID           string
	Nickname     string
	ProfileImage string
}

func (u *wireUser) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &u.ID)
	}
	var obj struct {
		MongoID      string `json:"_id"`
		ID           string `json:"id"`
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profileImage"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	u.ID = obj.MongoID
	if u.ID == "" {
		u.ID = obj.ID
	}
	u.Nickname = obj.Nickname
	u.ProfileImage = obj.ProfileImage
	return nil
}

// wirePost is the subset of the API's post document we care about.
type wirePost struct {
	ID            string     `json:"_id"`
	User          wireUser   `json:"user"`
	Type          string     `json:"type"`
	Caption       string     `json:"caption"`
	Content       string     `json:"content"`
	Images        []string   `json:"images"`
	Likes         []wireUser `json:"likes"`
	LikesCount    *int       `json:"likesCount"`
	CommentsCount int        `json:"commentsCount"`
	CreatedAt     string     `json:"createdAt"`
}

// mapPost converts a wire post; currentUserID marks the user's own posts.
func mapPost(w wirePost, currentUserID string) domain.Post {
	createdAt, _ := time.Parse(time.RFC3339, w.CreatedAt)

	kind := domain.PostKind(w.Type)
	if kind == "" {
		kind = domain.KindOOTD
	}

	content := w.Caption
	if content == "" {
		content = w.Content
	}

	liked := make([]string, 0, len(w.Likes))
	seen := make(map[string]struct{}, len(w.Likes))
	for _, l := range w.Likes {
		id := sanitizeForTerminal(l.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		liked = append(liked, id)
	}

	count := len(liked)
	if w.LikesCount != nil {
		count = max(*w.LikesCount, 0)
	}

	imageURL := ""
	if len(w.Images) > 0 {
		imageURL = sanitizeForTerminal(w.Images[0])
	}

	username := sanitizeForTerminal(w.User.Nickname)
	return domain.Post{
		ID:            w.ID,
		AuthorID:      w.User.ID,
		Author:        username,
		Username:      username,
		Kind:          kind,
		Content:       cleanText(content),
		ImageURL:      imageURL,
		LikedUserIDs:  liked,
		LikesCount:    count,
		CommentsCount: w.CommentsCount,
		CreatedAt:     createdAt,
		IsOwn:         currentUserID != "" && w.User.ID == currentUserID,
	}
}

func mapPosts(ws []wirePost, currentUserID string) []domain.Post {
	out := make([]domain.Post, 0, len(ws))
	for _, w := range ws {
		if w.ID == "" {
			continue
		}
		out = append(out, mapPost(w, currentUserID))
	}
	return out
}

// decodePostList accepts a bare array or an object wrapping it under
// "posts" or "data".
func decodePostList(data []byte) ([]wirePost, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []wirePost
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var env struct {
		Posts []wirePost `json:"posts"`
		Data  []wirePost `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	if env.Posts != nil {
		return env.Posts, nil
	}
	return env.Data, nil
}

// decodePost accepts a bare post or one wrapped under "post".
func decodePost(data []byte) (wirePost, error) {
	var env struct {
		Post *wirePost `json:"post"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return wirePost{}, err
	}
	if env.Post != nil {
		return *env.Post, nil
	}
	var w wirePost
	if err := json.Unmarshal(data, &w); err != nil {
		return wirePost{}, err
	}
	if w.ID == "" {
		return wirePost{}, fmt.Errorf("post response has no id")
	}
	return w, nil
}
