package utils

import (
	"math/rand"
	"strings"
	"time"
)

const digitBytes = "1234567890"
const (
	digitIdxBits = 6                   // 6 bits to represent a digit index
	digitIdxMask = 1<<digitIdxBits - 1 // All 1-bits, as many as digitIdxBits
	digitIdxMax  = 63 / digitIdxBits
)

var src = rand.NewSource(time.Now().UnixNano())

// RandDigits returns a string of n random decimal digits.
func RandDigits(n int) string {
	if n < 0 {
		return ""
	}

	sb := strings.Builder{}
	sb.Grow(n)
	// A src.Int63() generates 63 random bits, enough for digitIdxMax characters!
	for i, cache, remain := n-1, src.Int63(), digitIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = src.Int63(), digitIdxMax
		}
		if idx := int(cache & digitIdxMask); idx < len(digitBytes) {
			sb.WriteByte(digitBytes[idx])
			i--
		}
		cache >>= digitIdxBits
		remain--
	}

	return sb.String()
}

// RandAccountNumber returns an n-digit number string with a non-zero
// leading digit, so the length is stable under numeric parsing.
func RandAccountNumber(n int) string {
	if n <= 0 {
		return ""
	}
	lead := byte('1' + rand.Intn(9))
	if n == 1 {
		return string(lead)
	}
	return string(lead) + RandDigits(n-1)
}
