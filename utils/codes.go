package utils

import (
	"crypto/rand"
	"math/big"
)

// CodeAlphabet is the pool invitation codes are drawn from.
const CodeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the length of generated invitation codes.
const CodeLength = 10

// GenerateCode returns a code of exactly length characters drawn uniformly
// at random from alphabet.
func GenerateCode(length int, alphabet string) string {
	pool := []rune(alphabet)
	code := make([]rune, length)
	max := big.NewInt(int64(len(pool)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		code[i] = pool[n.Int64()]
	}
	return string(code)
}
