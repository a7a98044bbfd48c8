package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const otpDigits = "0123456789"

// GenerateSecureOTP returns a numeric code of the given length drawn from
// crypto/rand without modulo bias.
func GenerateSecureOTP(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("otp length must be positive")
	}

	base := big.NewInt(int64(len(otpDigits)))
	buffer := make([]byte, length)
	for i := range buffer {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		buffer[i] = otpDigits[n.Int64()]
	}
	return string(buffer), nil
}
