package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestGenerateTempPassword(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		pw, err := GenerateTempPassword()
		require.NoError(t, err)
		assert.Len(t, pw, TempPasswordLength)
		for _, c := range pw {
			assert.True(t, strings.ContainsRune(TempPasswordCharset, c), "unexpected character %q", c)
		}
		seen[pw] = true
	}
	assert.Greater(t, len(seen), 45, "passwords should not repeat")
}

func TestGeneratePassword_ReaderError(t *testing.T) {
	_, err := generatePassword(failingReader{}, 12)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate password")
}
