package main

import (
	"fmt"

	"github.com/alovak/cardcheck/internal/client"
	"github.com/alovak/cardcheck/validator"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		server   string
		cardType string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "check <number>",
		Short: "Validate a card number",
		Long: `Validate a card number locally or against a running server.
Exits with status 1 when the number is rejected.

Examples:
  cardcheck check "4111 1111 1111 1111"
  cardcheck check 378282246310005 --card-type=amex
  cardcheck check 5555555555554444 --server=http://localhost:9090 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp validator.ValidateResponse

			if server != "" {
				var err error
				resp, err = client.New(server, nil).Validate(cmd.Context(), args[0], cardType)
				if err != nil {
					return err
				}
			} else {
				v, err := buildValidator(opts.config())
				if err != nil {
					return err
				}
				resp = v.Check(args[0], cardType)
			}

			if err := printCheck(cmd.OutOrStdout(), resp, asJSON); err != nil {
				return fmt.Errorf("printing result: %w", err)
			}
			if !resp.Valid() {
				return errInvalidNumber
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Base URL of a running cardcheck server (default: validate locally)")
	cmd.Flags().StringVar(&cardType, "card-type", "", "Restrict matching to one card type id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}
