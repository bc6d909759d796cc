package cardtype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidRange = errors.New("invalid iin range")
	ErrInvalidRule  = errors.New("invalid card type rule")
)

// maxIINWidth keeps every bound representable as a uint64.
const maxIINWidth = 19

// IINRange is one issuer prefix specification. A singleton prefix has
// Low == High; a bounded range has two equal-width bounds with Low <= High.
type IINRange struct {
	Low  string
	High string

	lo, hi uint64
}

// Prefix returns a singleton IIN specification.
func Prefix(p string) IINRange {
	return IINRange{Low: p, High: p}
}

// Span returns a bounded IIN specification.
func Span(low, high string) IINRange {
	return IINRange{Low: low, High: high}
}

// Singleton reports whether r is a plain prefix.
func (r IINRange) Singleton() bool {
	return r.Low == r.High
}

// Width is the number of leading card digits the range inspects.
func (r IINRange) Width() int {
	return len(r.Low)
}

func (r IINRange) String() string {
	if r.Singleton() {
		return r.Low
	}
	return r.Low + "-" + r.High
}

// Matches reports whether the sanitized number falls into r.
func (r IINRange) Matches(digits string) bool {
	w := r.Width()
	if w == 0 || len(digits) < w {
		return false
	}
	if r.Singleton() {
		return strings.HasPrefix(digits, r.Low)
	}
	lo, hi, ok := r.bounds()
	if !ok {
		return false
	}
	v, err := strconv.ParseUint(digits[:w], 10, 64)
	if err != nil {
		return false
	}
	return lo <= v && v <= hi
}

// bounds returns the numeric bounds of a span. Spans that never went
// through New or ParseIINRanges are parsed on the spot; a malformed one
// matches nothing.
func (r IINRange) bounds() (uint64, uint64, bool) {
	// a compiled span always has hi > 0 since lo < hi
	if r.hi != 0 {
		return r.lo, r.hi, true
	}
	c, err := r.compile()
	if err != nil {
		return 0, 0, false
	}
	return c.lo, c.hi, true
}

// compile validates the bounds and caches their numeric values.
func (r IINRange) compile() (IINRange, error) {
	if r.Low == "" || r.High == "" {
		return r, fmt.Errorf("%w: empty bound", ErrInvalidRange)
	}
	if len(r.Low) != len(r.High) {
		return r, fmt.Errorf("%w: %s has bounds of different width", ErrInvalidRange, r)
	}
	if len(r.Low) > maxIINWidth {
		return r, fmt.Errorf("%w: %s is wider than %d digits", ErrInvalidRange, r, maxIINWidth)
	}
	lo, err := strconv.ParseUint(r.Low, 10, 64)
	if err != nil || !isDigits(r.Low) {
		return r, fmt.Errorf("%w: low bound %q is not a decimal number", ErrInvalidRange, r.Low)
	}
	hi, err := strconv.ParseUint(r.High, 10, 64)
	if err != nil || !isDigits(r.High) {
		return r, fmt.Errorf("%w: high bound %q is not a decimal number", ErrInvalidRange, r.High)
	}
	if lo > hi {
		return r, fmt.Errorf("%w: %s low bound exceeds high bound", ErrInvalidRange, r)
	}
	r.lo, r.hi = lo, hi
	return r, nil
}

// ParseIINRanges parses the comma separated notation used in registry files,
// e.g. "6011,622126-622925,644-649,65".
func ParseIINRanges(s string) ([]IINRange, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	items := strings.Split(s, ",")
	out := make([]IINRange, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			return nil, fmt.Errorf("%w: empty item in %q", ErrInvalidRange, s)
		}
		var r IINRange
		low, high, isSpan := strings.Cut(item, "-")
		if isSpan {
			r = Span(strings.TrimSpace(low), strings.TrimSpace(high))
		} else {
			r = Prefix(item)
		}
		compiled, err := r.compile()
		if err != nil {
			return nil, err
		}
		out = append(out, compiled)
	}
	return out, nil
}

// FormatIINRanges is the inverse of ParseIINRanges.
func FormatIINRanges(ranges []IINRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// Rule describes one card type: which lengths and prefixes identify it.
type Rule struct {
	ID        string
	Name      string
	Active    bool
	Length    int
	IINRanges []IINRange
}

// Matches reports whether an active rule accepts the sanitized number by
// length and by at least one IIN specification.
func (r Rule) Matches(digits string) bool {
	if !r.Active || len(digits) != r.Length {
		return false
	}
	for _, spec := range r.IINRanges {
		if spec.Matches(digits) {
			return true
		}
	}
	return false
}

func (r Rule) compile() (Rule, error) {
	if strings.TrimSpace(r.ID) == "" {
		return r, fmt.Errorf("%w: id is required", ErrInvalidRule)
	}
	if r.Length <= 0 {
		return r, fmt.Errorf("%w: %s: length must be positive (got %d)", ErrInvalidRule, r.ID, r.Length)
	}
	ranges := make([]IINRange, len(r.IINRanges))
	for i, spec := range r.IINRanges {
		compiled, err := spec.compile()
		if err != nil {
			return r, fmt.Errorf("%w: %s: %w", ErrInvalidRule, r.ID, err)
		}
		ranges[i] = compiled
	}
	r.IINRanges = ranges
	return r, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
