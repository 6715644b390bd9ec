package palette

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/HyunSeo88/palette-sub001/domain"
)

// APIError is a non-2xx response from the Palette API.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Message string // Server-provided "message", empty when absent
	Body    string
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = strings.TrimSpace(payload.Message)
		if msg == "" {
			msg = strings.TrimSpace(payload.Error)
		}
	}
	return &APIError{
		Status:  status,
		Method:  method,
		Path:    path,
		Message: sanitizeForTerminal(msg),
		Body:    string(body),
	}
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = strings.TrimSpace(e.Body)
	}
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Status, detail)
}

// UserMessage is the text shown in the status line.
func (e *APIError) UserMessage() string { return e.Message }

// Unwrap maps well-known statuses onto domain sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}
