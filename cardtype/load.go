package cardtype

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileRule is the on-disk shape of a rule. IIN ranges use the compact
// "6011,622126-622925,644-649,65" notation.
type fileRule struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Active    *bool  `yaml:"active"`
	Length    int    `yaml:"length"`
	IINRanges string `yaml:"iin_ranges"`
}

type file struct {
	CardTypes []fileRule `yaml:"card_types"`
}

// Load decodes a YAML registry document.
func Load(r io.Reader) (*Registry, error) {
	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no card types defined", ErrInvalidRule)
		}
		return nil, fmt.Errorf("decoding card types: %w", err)
	}
	if len(doc.CardTypes) == 0 {
		return nil, fmt.Errorf("%w: no card types defined", ErrInvalidRule)
	}

	rules := make([]Rule, 0, len(doc.CardTypes))
	for _, fr := range doc.CardTypes {
		ranges, err := ParseIINRanges(fr.IINRanges)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRule, fr.ID, err)
		}
		active := true
		if fr.Active != nil {
			active = *fr.Active
		}
		rules = append(rules, Rule{
			ID:        fr.ID,
			Name:      fr.Name,
			Active:    active,
			Length:    fr.Length,
			IINRanges: ranges,
		})
	}
	return New(rules)
}

// LoadFile reads a registry from a YAML file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening card types file: %w", err)
	}
	defer f.Close()

	reg, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return reg, nil
}
