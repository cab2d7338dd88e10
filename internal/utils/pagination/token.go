package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}

// EncodeOffsetToken creates a token pointing at offset within the result set identified by
// queryKey. A token is only accepted back for the same queryKey.
func EncodeOffsetToken(offset int, queryKey string) string {
	return EncodeMultiFieldToken(strconv.Itoa(offset), queryKey)
}

// DecodeOffsetToken returns the offset stored in token. An empty token means the first page.
func DecodeOffsetToken(token string, queryKey string) (int, error) {
	if token == "" {
		return 0, nil
	}
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	offset, err := strconv.Atoi(parts[0])
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid pagination token format (offset parse)")
	}
	if parts[1] != queryKey {
		return 0, fmt.Errorf("pagination token does not match the current filters")
	}
	return offset, nil
}

// Page slices items starting at offset, returning at most limit items and the token for the
// following page (empty when there is none).
func Page[T any](items []T, offset, limit int, queryKey string) ([]T, string) {
	if offset >= len(items) {
		return []T{}, ""
	}
	end := offset + limit
	if limit <= 0 || end >= len(items) {
		return items[offset:], ""
	}
	return items[offset:end], EncodeOffsetToken(end, queryKey)
}
