package validator

import (
	"fmt"
	"os"

	"github.com/alovak/cardcheck/cardtype"
)

// Config is a configuration for the validation service
type Config struct {
	HTTPAddr string
	// ISO8583Addr is the listen address of the account verification
	// front end. Empty disables it.
	ISO8583Addr string
	// CardTypesFile points to a YAML registry. Empty uses cardtype.DefaultRules.
	CardTypesFile string
	// AcceptedMII lists accepted leading digits, e.g. "3,4,5,6".
	AcceptedMII string
	LogLevel    string
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:    "localhost:9090",
		ISO8583Addr: "localhost:8583",
		AcceptedMII: "3,4,5,6",
		LogLevel:    "info",
	}
}

// ConfigFromEnv overlays CARDCHECK_* environment variables on DefaultConfig.
func ConfigFromEnv() *Config {
	def := DefaultConfig()
	cfg := &Config{
		HTTPAddr:      getenv("CARDCHECK_HTTP_ADDR", def.HTTPAddr),
		ISO8583Addr:   def.ISO8583Addr,
		CardTypesFile: getenv("CARDCHECK_CARD_TYPES", def.CardTypesFile),
		AcceptedMII:   getenv("CARDCHECK_ACCEPTED_MII", def.AcceptedMII),
		LogLevel:      getenv("CARDCHECK_LOG_LEVEL", def.LogLevel),
	}
	// an explicitly empty value turns the ISO 8583 listener off
	if v, ok := os.LookupEnv("CARDCHECK_ISO8583_ADDR"); ok {
		cfg.ISO8583Addr = v
	}
	return cfg
}

// Build loads the registry and MII set once and returns the immutable
// validator shared by every caller.
func (c *Config) Build() (*Validator, error) {
	registry := cardtype.Default()
	if c.CardTypesFile != "" {
		reg, err := cardtype.LoadFile(c.CardTypesFile)
		if err != nil {
			return nil, fmt.Errorf("loading registry: %w", err)
		}
		registry = reg
	}

	mii := DefaultMII()
	if c.AcceptedMII != "" {
		set, err := ParseMIISet(c.AcceptedMII)
		if err != nil {
			return nil, fmt.Errorf("parsing accepted mii: %w", err)
		}
		mii = set
	}

	return New(registry, mii), nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
