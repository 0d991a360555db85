package util

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const slugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateShareSlug returns a short random lowercase alphanumeric token
// used as the public URL segment for a shared trip.
func GenerateShareSlug(length int) (string, error) {
	if length <= 0 {
		length = 7
	}
	var builder strings.Builder
	builder.Grow(length)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(slugAlphabet[n.Int64()])
	}
	return builder.String(), nil
}
