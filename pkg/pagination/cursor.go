package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrInvalidToken = errors.New("invalid page token")

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Cursor carries an opaque keyset token in and the token of the next page out.
type Cursor struct {
	Token     string
	Limit     int
	NextToken string
}

func NewCursor(token string, limit int) *Cursor {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &Cursor{Token: token, Limit: limit}
}

func (c *Cursor) SetNextToken(token string) {
	c.NextToken = token
}

func DecodeToken[T any](token string) (T, error) {
	var cursorObj T

	if len(token) == 0 {
		return cursorObj, nil
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return cursorObj, fmt.Errorf("%w: base64 decode: %w", ErrInvalidToken, err)
	}

	if err := json.Unmarshal(data, &cursorObj); err != nil {
		return cursorObj, fmt.Errorf("%w: json unmarshal: %w", ErrInvalidToken, err)
	}

	return cursorObj, nil
}

func EncodeToken[T any](cursor T) string {
	data, _ := json.Marshal(cursor)

	return base64.URLEncoding.EncodeToString(data)
}

// KeysetCursor is the token payload used by stores that page on a string key.
type KeysetCursor struct {
	After string `json:"after"`
}
