package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeKeysetToken(t *testing.T) {
	at := time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC)

	token := EncodeKeysetToken(at, "LOAN", "8f14e45f-ceea-467e-a7b5-5a3d0a3c2f10")
	assert.NotEmpty(t, token, "Token should not be empty")
	assert.NotContains(t, token, "+")
	assert.NotContains(t, token, "=")

	decodedAt, kind, id, err := DecodeKeysetToken(token)
	require.NoError(t, err)
	assert.True(t, at.Equal(decodedAt))
	assert.Equal(t, "LOAN", kind)
	assert.Equal(t, "8f14e45f-ceea-467e-a7b5-5a3d0a3c2f10", id)

	// Current time values keep nanosecond precision
	now := time.Now().UTC()
	decodedNow, _, _, err := DecodeKeysetToken(EncodeKeysetToken(now, "APPLICATION", "a-1"))
	require.NoError(t, err)
	assert.True(t, now.Equal(decodedNow))
}

func TestDecodeKeysetTokenError(t *testing.T) {
	_, _, _, err := DecodeKeysetToken("this is not base64!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	_, _, _, err = DecodeKeysetToken(EncodeMultiFieldToken("2023-05-15T00:00:00Z"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	_, _, _, err = DecodeKeysetToken(EncodeMultiFieldToken("notadate", "LOAN", "1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date parse")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	decodedFields, err := DecodeMultiFieldToken(EncodeMultiFieldToken(fields...), -1)
	assert.NoError(t, err)
	assert.Equal(t, fields, decodedFields)

	// When splitting an empty string we get a slice with one empty string
	decodedEmpty, err := DecodeMultiFieldToken(EncodeMultiFieldToken(), -1)
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)

	// The last field keeps its separators when n limits the split
	decodedLimited, err := DecodeMultiFieldToken(EncodeMultiFieldToken("a", "b|c|d"), 2)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b|c|d"}, decodedLimited)
}
