package main

import (
	"github.com/alovak/cardcheck/internal/client"
	"github.com/alovak/cardcheck/validator"
	"github.com/spf13/cobra"
)

func newTypesCmd(opts *rootOptions) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the card type registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var types []validator.CardTypeResponse

			if server != "" {
				var err error
				types, err = client.New(server, nil).CardTypes(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				v, err := buildValidator(opts.config())
				if err != nil {
					return err
				}
				for _, rule := range v.Registry().Rules() {
					types = append(types, validator.NewCardTypeResponse(rule))
				}
			}

			return printCardTypes(cmd.OutOrStdout(), types)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "Base URL of a running cardcheck server (default: local registry)")

	return cmd
}
