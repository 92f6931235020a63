package internal

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strconv"
)

// ResetCodeBetween returns the decimal string form of a uniformly drawn
// integer in [min, max]. With the default range 100000–999999 the result is
// always six digits with no leading zero.
func ResetCodeBetween(min, max int) (string, error) {
	if min < 1 || max < min {
		return "", errors.New("invalid reset code range")
	}

	span := int64(max) - int64(min) + 1
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(int64(min)+n.Int64(), 10), nil
}
