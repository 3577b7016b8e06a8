package app

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// newNumericCode returns a uniformly random fixed-length numeric code,
// zero-padded, e.g. "042917" for length 6.
func newNumericCode(length int) string {
	max := big.NewInt(1)
	for i := 0; i < length; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails when the platform source is broken.
		panic(err)
	}
	digits := n.String()
	for len(digits) < length {
		digits = "0" + digits
	}
	return digits
}
