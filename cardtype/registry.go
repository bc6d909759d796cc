package cardtype

import "fmt"

// Registry is the immutable table of card type rules. It is built once and
// safe for concurrent reads; it exposes no mutation API.
type Registry struct {
	rules []Rule
	index map[string]int
}

// New validates rules and returns a registry that keeps their order.
func New(rules []Rule) (*Registry, error) {
	reg := &Registry{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for _, rule := range rules {
		compiled, err := rule.compile()
		if err != nil {
			return nil, err
		}
		if _, dup := reg.index[compiled.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRule, compiled.ID)
		}
		reg.index[compiled.ID] = len(reg.rules)
		reg.rules = append(reg.rules, compiled)
	}
	return reg, nil
}

// MustNew is New for static tables known to be valid.
func MustNew(rules []Rule) *Registry {
	reg, err := New(rules)
	if err != nil {
		panic(err)
	}
	return reg
}

// Default returns a registry holding DefaultRules.
func Default() *Registry {
	return MustNew(DefaultRules())
}

// DefaultRules returns the stock VISA/AMEX/MasterCard/Discover table.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:        "amex",
			Name:      "American Express",
			Active:    true,
			Length:    15,
			IINRanges: []IINRange{Prefix("34"), Prefix("37")},
		},
		{
			ID:        "discover",
			Name:      "Discover",
			Active:    true,
			Length:    16,
			IINRanges: []IINRange{Prefix("6011"), Span("622126", "622925"), Span("644", "649"), Prefix("65")},
		},
		{
			ID:        "mastercard",
			Name:      "MasterCard",
			Active:    true,
			Length:    16,
			IINRanges: []IINRange{Span("51", "55")},
		},
		{
			ID:        "visa",
			Name:      "VISA",
			Active:    true,
			Length:    16,
			IINRanges: []IINRange{Prefix("4")},
		},
	}
}

// Rules returns a copy of every rule in registry order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	for i, rule := range r.rules {
		rule.IINRanges = append([]IINRange(nil), rule.IINRanges...)
		out[i] = rule
	}
	return out
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// Lookup returns the rule registered under id.
func (r *Registry) Lookup(id string) (Rule, bool) {
	i, ok := r.index[id]
	if !ok {
		return Rule{}, false
	}
	rule := r.rules[i]
	rule.IINRanges = append([]IINRange(nil), rule.IINRanges...)
	return rule, true
}

// Active reports whether id names an active rule.
func (r *Registry) Active(id string) bool {
	i, ok := r.index[id]
	return ok && r.rules[i].Active
}

// DisplayName returns the human readable name for id, or "" when unknown.
func (r *Registry) DisplayName(id string) string {
	if i, ok := r.index[id]; ok {
		return r.rules[i].Name
	}
	return ""
}

// Match returns the ids of every active rule accepting digits, in registry
// order. A non-empty only restricts matching to that single id.
func (r *Registry) Match(digits, only string) []string {
	ids := make([]string, 0, 1)
	if digits == "" {
		return ids
	}
	for _, rule := range r.rules {
		if only != "" && rule.ID != only {
			continue
		}
		if rule.Matches(digits) {
			ids = append(ids, rule.ID)
		}
	}
	return ids
}
