package cardgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/alovak/cardcheck/cardtype"
	"github.com/alovak/cardcheck/internal/pan"
)

// Generate returns a random Luhn-valid number that rule accepts. One IIN
// specification is picked at random; spans yield a random prefix inside
// their bounds.
func Generate(rule cardtype.Rule) (string, error) {
	if rule.Length <= 1 {
		return "", fmt.Errorf("rule %s: length %d leaves no room for a check digit", rule.ID, rule.Length)
	}
	if len(rule.IINRanges) == 0 {
		return "", fmt.Errorf("rule %s has no iin ranges", rule.ID)
	}

	i, err := randomInt(len(rule.IINRanges))
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	prefix, err := randomPrefix(rule.IINRanges[i])
	if err != nil {
		return "", err
	}

	fill := rule.Length - 1 - len(prefix)
	if fill < 0 {
		return "", fmt.Errorf("rule %s: prefix %s too long for length %d", rule.ID, prefix, rule.Length)
	}
	digits, err := randomDigits(fill)
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}

	body := prefix + digits
	return body + string(pan.CheckDigit(body)), nil
}

// GenerateUnique keeps generating until exists reports an unused number.
func GenerateUnique(rule cardtype.Rule, maxRetries int, exists func(string) (bool, error)) (string, error) {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	for i := 0; i <= maxRetries; i++ {
		number, err := Generate(rule)
		if err != nil {
			return "", err
		}
		if exists == nil {
			return number, nil
		}
		used, err := exists(number)
		if err != nil {
			return "", fmt.Errorf("exists callback: %w", err)
		}
		if !used {
			return number, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique number after %d retries", maxRetries)
}

func randomPrefix(r cardtype.IINRange) (string, error) {
	if r.Singleton() {
		return r.Low, nil
	}
	lo, err := strconv.ParseUint(r.Low, 10, 64)
	if err != nil {
		return "", fmt.Errorf("range %s: %w", r, err)
	}
	hi, err := strconv.ParseUint(r.High, 10, 64)
	if err != nil {
		return "", fmt.Errorf("range %s: %w", r, err)
	}
	n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(hi-lo+1))
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	v := lo + n.Uint64()
	return fmt.Sprintf("%0*d", r.Width(), v), nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// randomDigits uses rejection sampling so every digit is equally likely:
// only bytes below 250 are kept before taking them mod 10.
func randomDigits(count int) (string, error) {
	if count <= 0 {
		return "", nil
	}
	const threshold = 250
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 64)
	for sb.Len() < count {
		n, err := rand.Read(buf)
		if err != nil {
			return "", err
		}
		for i := 0; i < n && sb.Len() < count; i++ {
			if b := buf[i]; b < threshold {
				sb.WriteByte('0' + b%10)
			}
		}
	}
	return sb.String(), nil
}
