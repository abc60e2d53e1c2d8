package domain

import (
	"crypto/rand"
	"math/big"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateJoinCode produces a short human-typeable code. Uniqueness among
// live sessions is the caller's job - collisions are handled by
// regenerating.
func GenerateJoinCode(length int) (string, error) {
	if length < 1 {
		length = 5
	}

	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}

		code[i] = codeAlphabet[n.Int64()]
	}

	return string(code), nil
}
