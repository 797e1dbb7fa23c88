package globetrotter

import "math/rand/v2"

// shareCodeAlphabet is lowercase base36: short, URL-safe, and easy to
// read aloud.
const (
	shareCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	shareCodeLength   = 6
)

// NewShareCode returns a random 6-character share code. Codes are not
// guaranteed unique; the store enforces uniqueness and the caller
// retries on collision.
func NewShareCode(rng *rand.Rand) string {
	b := make([]byte, shareCodeLength)
	for i := range b {
		b[i] = shareCodeAlphabet[rng.IntN(len(shareCodeAlphabet))]
	}
	return string(b)
}
