package pan

import "strings"

// MaskMarker prefixes the visible tail of a masked card number.
const MaskMarker = "***"

// Sanitize removes every character that is not an ASCII decimal digit.
func Sanitize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// IsDigits reports whether s is non-empty and made of decimal digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// LuhnValid runs the mod-10 check over a sanitized number. The rightmost
// digit is position 1 and is never doubled.
func LuhnValid(digits string) bool {
	if !IsDigits(digits) {
		return false
	}
	sum, dbl := 0, false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum%10 == 0
}

// CheckDigit returns the Luhn check digit that completes body.
func CheckDigit(body string) byte {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return '0' + byte((10-sum%10)%10)
}

// LastN returns the trailing n bytes of s, or s itself when shorter.
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// LooksMasked reports whether s is already a short masked form such as "***1234".
func LooksMasked(s string) bool {
	return strings.Contains(s, "*") && len(s) < 10
}

// Mask returns "***" followed by the last four digits of s. Values that are
// already masked are returned unchanged so re-validating never exposes digits.
func Mask(s string) string {
	if LooksMasked(s) {
		return s
	}
	digits := Sanitize(s)
	if digits == "" {
		return ""
	}
	return MaskMarker + LastN(digits, 4)
}
