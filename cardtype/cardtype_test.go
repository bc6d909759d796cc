package cardtype_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alovak/cardcheck/cardtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIINRanges(t *testing.T) {
	ranges, err := cardtype.ParseIINRanges("6011, 622126-622925,644-649,65")
	require.NoError(t, err)
	require.Len(t, ranges, 4)

	require.True(t, ranges[0].Singleton())
	require.Equal(t, "6011", ranges[0].Low)
	require.False(t, ranges[1].Singleton())
	require.Equal(t, 6, ranges[1].Width())
	require.Equal(t, "6011,622126-622925,644-649,65", cardtype.FormatIINRanges(ranges))

	empty, err := cardtype.ParseIINRanges("  ")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestParseIINRanges_Errors(t *testing.T) {
	cases := []string{
		"4,",
		"4a",
		"51-5",
		"55-51",
		"5x-55",
		"-55",
		"12345678901234567890",
	}
	for _, in := range cases {
		_, err := cardtype.ParseIINRanges(in)
		require.ErrorIs(t, err, cardtype.ErrInvalidRange, "input %q", in)
	}
}

func TestIINRange_BoundaryMatching(t *testing.T) {
	ranges, err := cardtype.ParseIINRanges("622126-622925")
	require.NoError(t, err)
	r := ranges[0]

	tests := []struct {
		prefix string
		want   bool
	}{
		{"622125", false},
		{"622126", true},
		{"622500", true},
		{"622925", true},
		{"622926", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Matches(tt.prefix+"0000000000"), "prefix %s", tt.prefix)
	}

	// A number shorter than the range width can never match.
	require.False(t, r.Matches("62212"))
}

func TestIINRange_MatchesWithoutRegistry(t *testing.T) {
	mastercard := cardtype.Span("51", "55")

	require.True(t, mastercard.Matches("5300000000000000"))
	require.True(t, mastercard.Matches("5100000000000000"))
	require.True(t, mastercard.Matches("5500000000000000"))
	require.False(t, mastercard.Matches("5600000000000000"))
	require.False(t, mastercard.Matches("5000000000000000"))

	rule := cardtype.Rule{ID: "mastercard", Active: true, Length: 16, IINRanges: []cardtype.IINRange{mastercard}}
	require.True(t, rule.Matches("5300000000000000"))
	require.False(t, rule.Matches("530000000000000"))

	// literal bounds behave like Span
	require.True(t, cardtype.IINRange{Low: "644", High: "649"}.Matches("6450000000000000"))

	// malformed spans match nothing
	require.False(t, cardtype.Span("55", "51").Matches("5300000000000000"))
	require.False(t, cardtype.Span("5a", "55").Matches("5300000000000000"))
	require.False(t, cardtype.Span("5", "55").Matches("5300000000000000"))
}

func TestRegistry_MatchDefault(t *testing.T) {
	reg := cardtype.Default()

	tests := []struct {
		name   string
		number string
		want   []string
	}{
		{"visa", "4999999999999999", []string{"visa"}},
		{"mastercard 55", "5500000000000004", []string{"mastercard"}},
		{"mastercard 51", "5100000000000000", []string{"mastercard"}},
		{"mastercard 56 is outside", "5600000000000000", []string{}},
		{"discover 6011", "6011000000000004", []string{"discover"}},
		{"discover 644", "6440000000000000", []string{"discover"}},
		{"discover 65", "6500000000000002", []string{"discover"}},
		{"amex 15 digits", "378282246310005", []string{"amex"}},
		{"amex prefix with 16 digits", "3400000000000000", []string{}},
		{"visa prefix with 15 digits", "411111111111111", []string{}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, reg.Match(tt.number, ""))
		})
	}
}

func TestRegistry_MatchOverlapKeepsRegistryOrder(t *testing.T) {
	reg, err := cardtype.New([]cardtype.Rule{
		{ID: "zeta", Name: "Zeta", Active: true, Length: 16, IINRanges: []cardtype.IINRange{cardtype.Span("40", "49")}},
		{ID: "alpha", Name: "Alpha", Active: true, Length: 16, IINRanges: []cardtype.IINRange{cardtype.Prefix("4"), cardtype.Prefix("41")}},
		{ID: "off", Name: "Off", Active: false, Length: 16, IINRanges: []cardtype.IINRange{cardtype.Prefix("4")}},
	})
	require.NoError(t, err)

	require.Equal(t, []string{"zeta", "alpha"}, reg.Match("4111111111111111", ""))
	require.Equal(t, []string{"alpha"}, reg.Match("4111111111111111", "alpha"))
	require.Empty(t, reg.Match("4111111111111111", "off"))
}

func TestRegistry_Lookup(t *testing.T) {
	reg := cardtype.Default()

	require.Equal(t, "VISA", reg.DisplayName("visa"))
	require.Equal(t, "American Express", reg.DisplayName("amex"))
	require.Equal(t, "", reg.DisplayName("unknown"))
	require.True(t, reg.Active("discover"))
	require.False(t, reg.Active("unknown"))
	require.Equal(t, 4, reg.Len())

	rule, ok := reg.Lookup("discover")
	require.True(t, ok)
	require.Equal(t, 16, rule.Length)

	// Mutating returned copies must not leak into the registry.
	rule.IINRanges[0] = cardtype.Prefix("9")
	rules := reg.Rules()
	rules[0].Name = "changed"
	again, _ := reg.Lookup("discover")
	require.Equal(t, "6011", again.IINRanges[0].Low)
	require.Equal(t, "American Express", reg.DisplayName("amex"))
}

func TestNew_Validation(t *testing.T) {
	visa := cardtype.Rule{ID: "visa", Name: "VISA", Active: true, Length: 16, IINRanges: []cardtype.IINRange{cardtype.Prefix("4")}}

	tests := []struct {
		name  string
		rules []cardtype.Rule
	}{
		{"missing id", []cardtype.Rule{{Length: 16}}},
		{"zero length", []cardtype.Rule{{ID: "x", Length: 0}}},
		{"duplicate id", []cardtype.Rule{visa, visa}},
		{"bad range", []cardtype.Rule{{ID: "x", Length: 16, IINRanges: []cardtype.IINRange{cardtype.Span("9", "1")}}}},
		{"uneven range", []cardtype.Rule{{ID: "x", Length: 16, IINRanges: []cardtype.IINRange{cardtype.Span("9", "10")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cardtype.New(tt.rules)
			require.ErrorIs(t, err, cardtype.ErrInvalidRule)
		})
	}
}

func TestLoad(t *testing.T) {
	doc := `
card_types:
  - id: visa
    name: VISA
    length: 16
    iin_ranges: "4"
  - id: jcb
    name: JCB
    active: false
    length: 16
    iin_ranges: "3528-3589"
`
	reg, err := cardtype.Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, 2, reg.Len())
	require.True(t, reg.Active("visa"))
	require.False(t, reg.Active("jcb"))
	require.Equal(t, "JCB", reg.DisplayName("jcb"))
	require.Empty(t, reg.Match("3530111333300000", ""))
}

func TestLoad_Errors(t *testing.T) {
	_, err := cardtype.Load(strings.NewReader(""))
	require.ErrorIs(t, err, cardtype.ErrInvalidRule)

	_, err = cardtype.Load(strings.NewReader("card_types:\n  - id: x\n    length: 16\n    iin_ranges: \"5-1\"\n"))
	require.ErrorIs(t, err, cardtype.ErrInvalidRange)

	_, err = cardtype.Load(strings.NewReader("card_types:\n  - id: x\n    lenght: 16\n"))
	require.Error(t, err)
}

func TestLoadFile_RepositoryConfig(t *testing.T) {
	reg, err := cardtype.LoadFile(filepath.Join("..", "configs", "card_types.yaml"))
	require.NoError(t, err)
	require.Equal(t, 5, reg.Len())
	require.Equal(t, []string{"visa"}, reg.Match("4111111111111111", ""))

	_, err = cardtype.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
