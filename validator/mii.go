package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidMII = errors.New("invalid major industry identifier")

// MIISet is the set of accepted leading digits (Major Industry Identifiers).
type MIISet struct {
	accepted [10]bool
}

// NewMIISet builds a set from digits 0..9.
func NewMIISet(digits ...int) (MIISet, error) {
	var s MIISet
	for _, d := range digits {
		if d < 0 || d > 9 {
			return MIISet{}, fmt.Errorf("%w: %d is not a single digit", ErrInvalidMII, d)
		}
		s.accepted[d] = true
	}
	return s, nil
}

// ParseMIISet parses a comma separated digit list such as "3,4,5,6".
func ParseMIISet(s string) (MIISet, error) {
	var digits []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		d, err := strconv.Atoi(item)
		if err != nil {
			return MIISet{}, fmt.Errorf("%w: %q", ErrInvalidMII, item)
		}
		digits = append(digits, d)
	}
	if len(digits) == 0 {
		return MIISet{}, fmt.Errorf("%w: no digits in %q", ErrInvalidMII, s)
	}
	return NewMIISet(digits...)
}

// DefaultMII accepts travel/entertainment, banking and merchandizing issuers.
func DefaultMII() MIISet {
	s, _ := NewMIISet(3, 4, 5, 6)
	return s
}

// Contains reports whether d is an accepted leading digit.
func (s MIISet) Contains(d int) bool {
	return d >= 0 && d <= 9 && s.accepted[d]
}

// Digits lists the accepted digits in ascending order.
func (s MIISet) Digits() []int {
	var out []int
	for d, ok := range s.accepted {
		if ok {
			out = append(out, d)
		}
	}
	return out
}

func (s MIISet) String() string {
	digits := s.Digits()
	parts := make([]string, len(digits))
	for i, d := range digits {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// Check reports whether the sanitized number's leading digit is accepted.
func (s MIISet) Check(sanitized string) bool {
	if sanitized == "" {
		return false
	}
	c := sanitized[0]
	if c < '0' || c > '9' {
		return false
	}
	return s.Contains(int(c - '0'))
}
