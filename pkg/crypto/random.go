package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var randomInt = rand.Int

// RandomDigits returns n uniformly random decimal digits; the first is never zero.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid digit count %d", n)
	}
	buf := make([]byte, n)
	for i := range buf {
		lo, span := int64(0), int64(10)
		if i == 0 {
			lo, span = 1, 9
		}
		d, err := randomInt(rand.Reader, big.NewInt(span))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digits: %w", err)
		}
		buf[i] = byte('0' + lo + d.Int64())
	}
	return string(buf), nil
}

// RandomIntn returns a uniformly random integer in [0, max).
func RandomIntn(max int64) (int64, error) {
	if max <= 0 {
		return 0, fmt.Errorf("invalid bound %d", max)
	}
	n, err := randomInt(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return n.Int64(), nil
}

