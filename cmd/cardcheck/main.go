package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alovak/cardcheck/validator"
	"github.com/spf13/cobra"
)

var version = "v0.1.0" // injected by -ldflags during build

// rootOptions are the flags shared by every command. Empty values fall back
// to the CARDCHECK_* environment and then to validator.DefaultConfig.
type rootOptions struct {
	cardTypes   string
	acceptedMII string
	logLevel    string
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		if code != ExitCodeInvalidNumber {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(code)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "cardcheck",
		Short:         "Card number format validation service",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cardTypes, "card-types", "", "Card type registry YAML file (default: built-in VISA/AMEX/MasterCard/Discover)")
	rootCmd.PersistentFlags().StringVar(&opts.acceptedMII, "accepted-mii", "", "Comma separated accepted leading digits (default: 3,4,5,6)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newCheckCmd(opts),
		newTypesCmd(opts),
		newSampleCmd(opts),
	)

	return rootCmd
}

func (o *rootOptions) config() *validator.Config {
	cfg := validator.ConfigFromEnv()
	if o.cardTypes != "" {
		cfg.CardTypesFile = o.cardTypes
	}
	if o.acceptedMII != "" {
		cfg.AcceptedMII = o.acceptedMII
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, errInvalidNumber):
		return ExitCodeInvalidNumber
	case errors.Is(err, errConfig):
		return ExitCodeConfigError
	default:
		return ExitCodeGeneralError
	}
}
