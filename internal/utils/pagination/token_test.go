package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	assert.NotEmpty(t, token, "Token should not be empty")

	fields, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields)

	_, err = DecodeMultiFieldToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")
}

func TestEncodeDecodeOffsetToken(t *testing.T) {
	token := EncodeOffsetToken(40, "type=mandatory")

	offset, err := DecodeOffsetToken(token, "type=mandatory")
	require.NoError(t, err)
	assert.Equal(t, 40, offset)

	// Empty token is the first page
	offset, err = DecodeOffsetToken("", "anything")
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
}

func TestDecodeOffsetTokenError(t *testing.T) {
	_, err := DecodeOffsetToken(EncodeOffsetToken(10, "status=approved"), "status=pending")
	assert.Error(t, err, "Token from another query must be rejected")

	_, err = DecodeOffsetToken(EncodeMultiFieldToken("ten", "q"), "q")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "offset parse")

	_, err = DecodeOffsetToken(EncodeMultiFieldToken("-1", "q"), "q")
	assert.Error(t, err)

	_, err = DecodeOffsetToken(EncodeMultiFieldToken("1"), "q")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	first, next := Page(items, 0, 2, "q")
	assert.Equal(t, []int{1, 2}, first)
	require.NotEmpty(t, next)

	offset, err := DecodeOffsetToken(next, "q")
	require.NoError(t, err)
	second, next := Page(items, offset, 2, "q")
	assert.Equal(t, []int{3, 4}, second)

	offset, err = DecodeOffsetToken(next, "q")
	require.NoError(t, err)
	last, next := Page(items, offset, 2, "q")
	assert.Equal(t, []int{5}, last)
	assert.Empty(t, next, "No token after the last page")

	beyond, next := Page(items, 10, 2, "q")
	assert.Empty(t, beyond)
	assert.Empty(t, next)
}
