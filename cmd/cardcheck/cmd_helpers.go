package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alovak/cardcheck/validator"
	"golang.org/x/exp/slog"
)

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("%w: log level %q", errConfig, level)
		}
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// buildValidator wraps config failures so they map to ExitCodeConfigError.
func buildValidator(cfg *validator.Config) (*validator.Validator, error) {
	v, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	return v, nil
}

func printCheck(w io.Writer, resp validator.ValidateResponse, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "status:\t%s\n", resp.Status)
	if len(resp.CandidateTypes) > 0 {
		fmt.Fprintf(tw, "card types:\t%s (%s)\n", resp.TypeString(), strings.Join(resp.CardTypeNames, ", "))
	}
	if resp.MaskedNumber != "" {
		fmt.Fprintf(tw, "masked:\t%s\n", resp.MaskedNumber)
	}
	if resp.Reason != "" {
		fmt.Fprintf(tw, "reason:\t%s\n", resp.Reason)
	}
	return tw.Flush()
}

func printCardTypes(w io.Writer, types []validator.CardTypeResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tACTIVE\tLENGTH\tIIN RANGES")
	for _, ct := range types {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%d\t%s\n", ct.ID, ct.Name, ct.Active, ct.Length, ct.IINRanges)
	}
	return tw.Flush()
}
