package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shyam-dasgupta/mongo-query-builder/internal/search"
)

func newSearchCmd() *cobra.Command {
	var withinWords bool

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Show the regex patterns a search string compiles to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pat, err := search.Compile(args[0], withinWords)
			if err != nil {
				return err
			}
			if pat == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "no tokens")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "all: %s\n", pat.AllSource)
			fmt.Fprintf(cmd.OutOrStdout(), "any: %s\n", pat.AnySource)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withinWords, "within-words", false, "Allow tokens to match inside words")
	return cmd
}
