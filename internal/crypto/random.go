package crypto

import (
	"crypto/rand"
	"fmt"
)

// RandBytes fills the provided slice with cryptographically secure random
// bytes.
func RandBytes(out []byte) ([]byte, error) {
	if len(out) == 0 {
		return out, fmt.Errorf("output slice is empty")
	}
	if _, err := rand.Read(out); err != nil {
		return nil, fmt.Errorf("rand read: %w", err)
	}
	return out, nil
}

// RandDigits returns a string of n uniformly random decimal digits, suitable
// for phone verification codes. Bytes above 249 are rejected so every digit
// is equally likely.
func RandDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("digit count must be positive")
	}
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := RandBytes(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
