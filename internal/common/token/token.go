package token

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// alphabet is the 36-symbol set session codes are drawn from. Codes are
// uppercase so they stay easy to read out loud and type on a phone.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SessionCodeLength is the default length of a session code. Six symbols
// from a 36-symbol alphabet keeps collisions negligible for any practical
// number of concurrent sessions.
const SessionCodeLength = 6

// NewSessionCode generates a short shareable session code using
// crypto/rand.
func NewSessionCode() (string, error) {
	return generate(SessionCodeLength)
}

func generate(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}
