package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/shyam-dasgupta/mongo-query-builder/internal/queryfile"
	"github.com/shyam-dasgupta/mongo-query-builder/pkg/mongoquery"
)

func newBuildCmd() *cobra.Command {
	var file string
	var compact bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a filter from a YAML query file",
		Long: `Build reads a declarative query description and prints the composed
filter as MongoDB Extended JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := queryfile.Load(file)
			if err != nil {
				return err
			}
			b := mongoquery.New(builderOptions()...)
			q.Apply(b)
			doc, err := b.Build()
			if err != nil {
				return err
			}

			var out []byte
			if compact {
				out, err = bson.MarshalExtJSON(doc, false, false)
			} else {
				out, err = bson.MarshalExtJSONIndent(doc, false, false, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("cannot render filter: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the YAML query file")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVar(&compact, "compact", false, "Print the filter on a single line")
	return cmd
}
