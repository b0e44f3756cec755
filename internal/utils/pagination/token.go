package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// Tokens travel in query strings, so they use the URL-safe alphabet.
var encoding = base64.RawURLEncoding

// EncodeMultiFieldToken creates a token with any number of string fields
// This provides flexibility for different pagination strategies
func EncodeMultiFieldToken(fields ...string) string {
	return encoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into at most n component fields; the
// last field keeps any remaining separators. n < 0 splits on every separator.
func DecodeMultiFieldToken(token string, n int) ([]string, error) {
	decodedBytes, err := encoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.SplitN(string(decodedBytes), "|", n), nil
}

// EncodeKeysetToken creates a token for keyset pagination ordered by a
// timestamp, a discriminator and an ID.
func EncodeKeysetToken(at time.Time, kind, id string) string {
	return EncodeMultiFieldToken(at.Format(timeFormat), kind, id)
}

// DecodeKeysetToken parses a token produced by EncodeKeysetToken.
func DecodeKeysetToken(token string) (time.Time, string, string, error) {
	parts, err := DecodeMultiFieldToken(token, 3)
	if err != nil {
		return time.Time{}, "", "", err
	}
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return time.Time{}, "", "", fmt.Errorf("invalid pagination token format (split)")
	}
	at, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", "", fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return at, parts[1], parts[2], nil
}
