package repository

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPaginationToken is returned when a pagination token cannot be decoded.
	ErrInvalidPaginationToken = errors.New("token is invalid")
)

const (
	// DefaultPaginationLimit is the default number of items per page.
	DefaultPaginationLimit = 10
	maxPaginationLimit     = 100
)

// Paginator represents pagination state using cursor-based pagination over insertion order.
type Paginator struct {
	LastID  string
	LastSeq int64
}

// Encode encodes the paginator state into a base64-encoded token.
func (t Paginator) Encode() string {
	key := fmt.Sprintf("%d,%s", t.LastSeq, t.LastID)
	return base64.StdEncoding.EncodeToString([]byte(key))
}

// DecodePageToken decodes a base64-encoded pagination token into a Paginator.
func DecodePageToken(encodedToken string) (*Paginator, error) {
	bytes, err := base64.StdEncoding.DecodeString(encodedToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 token: %w", err)
	}
	decodedStr := string(bytes)
	tokenParts := strings.SplitN(decodedStr, ",", 2)
	expectedTokenParts := 2
	if len(tokenParts) != expectedTokenParts || tokenParts[1] == "" {
		return nil, fmt.Errorf("invalid token format: %w", ErrInvalidPaginationToken)
	}

	seq, err := strconv.ParseInt(tokenParts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token position: %w", err)
	}

	return &Paginator{
		LastID:  tokenParts[1],
		LastSeq: seq,
	}, nil
}
