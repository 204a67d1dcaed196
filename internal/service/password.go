package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// TempPasswordCharset is the alphabet of invite passwords
	TempPasswordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"
	TempPasswordLength  = 12
)

// GenerateTempPassword returns a password drawn uniformly from TempPasswordCharset
func GenerateTempPassword() (string, error) {
	return generatePassword(rand.Reader, TempPasswordLength)
}

func generatePassword(r io.Reader, length int) (string, error) {
	max := big.NewInt(int64(len(TempPasswordCharset)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(r, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = TempPasswordCharset[n.Int64()]
	}
	return string(out), nil
}
