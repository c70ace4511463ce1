package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCodeLength(t *testing.T) {
	for _, length := range []int{1, 8, CodeLength, 32} {
		code := GenerateCode(length, CodeAlphabet)
		assert.Len(t, code, length)
	}
}

func TestGenerateCodeDrawsFromAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateCode(CodeLength, CodeAlphabet)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(CodeAlphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestGenerateCodeRestrictedAlphabet(t *testing.T) {
	code := GenerateCode(20, "ab")
	assert.Len(t, code, 20)
	for _, r := range code {
		assert.Contains(t, []rune{'a', 'b'}, r)
	}
}

func TestGenerateCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateCode(CodeLength, CodeAlphabet)] = true
	}
	// 62^10 possibilities; any repeat in 50 draws means the source is broken
	assert.Len(t, seen, 50)
}
