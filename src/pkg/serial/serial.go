// Package serial generates customer serials and PINs.
package serial

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const (
	// Digits is the random part of a serial; prefix + digits stays within 18 chars.
	Digits    = 10
	PINDigits = 4
	MaxLength = 18
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// Generate returns prefix followed by Digits random decimal digits.
func Generate(prefix string) (string, error) {
	if len(prefix)+Digits > MaxLength {
		return "", fmt.Errorf("serial prefix %q too long", prefix)
	}
	digits, err := randomDigits(Digits)
	if err != nil {
		return "", err
	}
	return prefix + digits, nil
}

// GeneratePIN returns a random 4-digit PIN.
func GeneratePIN() (string, error) {
	return randomDigits(PINDigits)
}

func ValidPIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// Mask hides the middle of a serial for listings shown to other customers.
func Mask(s string) string {
	if len(s) <= 4 {
		return s
	}
	masked := []byte(s)
	for i := 2; i < len(masked)-2; i++ {
		masked[i] = '*'
	}
	return string(masked)
}

func randomDigits(n int) (string, error) {
	buf := make([]byte, n)
	ten := big.NewInt(10)
	for i := range buf {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("read random: %w", err)
		}
		buf[i] = byte('0' + d.Int64())
	}
	return string(buf), nil
}
