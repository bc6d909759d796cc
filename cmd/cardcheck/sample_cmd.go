package main

import (
	"fmt"

	"github.com/alovak/cardcheck/internal/cardgen"
	"github.com/spf13/cobra"
)

func newSampleCmd(opts *rootOptions) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "sample <card-type>",
		Short: "Generate test numbers that pass validation for a card type",
		Long: `Generate distinct test numbers matching a card type's length and IIN
ranges, completed with a Luhn check digit.

Examples:
  cardcheck sample visa
  cardcheck sample discover -n 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			v, err := buildValidator(opts.config())
			if err != nil {
				return err
			}

			rule, ok := v.Registry().Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown card type %q", args[0])
			}

			seen := make(map[string]bool, count)
			exists := func(number string) (bool, error) {
				return seen[number], nil
			}

			for i := 0; i < count; i++ {
				number, err := cardgen.GenerateUnique(rule, 10, exists)
				if err != nil {
					return fmt.Errorf("generating %s number: %w", rule.ID, err)
				}
				seen[number] = true
				fmt.Fprintln(cmd.OutOrStdout(), number)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of card numbers to generate")

	return cmd
}
