package validation

import (
	"encoding/json"
	"errors"
	"mime"
	"strings"
)

// Request validation errors.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrTextRequired   = errors.New("text is required")
)

// IsJSONContentType reports whether the header value names application/json.
// Parameters such as charset are allowed.
func IsJSONContentType(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// ParseCheckRequest extracts the text to check from a JSON request body.
// Malformed JSON, a non-object body or a non-string text field is
// ErrInvalidRequest; a missing or empty text is ErrTextRequired.
func ParseCheckRequest(body []byte) (string, error) {
	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil || req == nil {
		return "", ErrInvalidRequest
	}

	raw, ok := req["text"]
	if !ok || string(raw) == "null" {
		return "", ErrTextRequired
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", ErrInvalidRequest
	}
	if text == "" {
		return "", ErrTextRequired
	}
	return text, nil
}
