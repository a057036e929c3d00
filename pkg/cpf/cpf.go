// Package cpf validates and generates Brazilian CPF numbers
// (11-digit national identifiers with two modulo-11 check digits).
package cpf

import (
	"math/rand"
	"strings"
)

// Validate reports whether s is a well-formed CPF: exactly 11 digits, not a
// single repeated digit, with both check digits correct.
func Validate(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	// Uniform strings like 00000000000 pass the checksum but are invalid.
	if strings.Count(s, s[:1]) == 11 {
		return false
	}
	if checkDigit(s[:9]) != int(s[9]-'0') {
		return false
	}
	return checkDigit(s[:10]) == int(s[10]-'0')
}

// Generate returns a random valid CPF. Intended for seeds and test fixtures.
func Generate() string {
	digits := make([]byte, 0, 11)
	for i := 0; i < 9; i++ {
		digits = append(digits, byte('0'+rand.Intn(10)))
	}
	digits = append(digits, byte('0'+checkDigit(string(digits))))
	digits = append(digits, byte('0'+checkDigit(string(digits))))
	return string(digits)
}

// checkDigit computes the modulo-11 check digit for a digit prefix.
// Weights run from len(s)+1 down to 2; a remainder of 10 maps to 0.
func checkDigit(s string) int {
	sum := 0
	weight := len(s) + 1
	for i := 0; i < len(s); i++ {
		sum += int(s[i]-'0') * (weight - i)
	}
	d := sum * 10 % 11
	if d == 10 {
		d = 0
	}
	return d
}
