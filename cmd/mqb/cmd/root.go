// Package cmd provides the CLI commands for mqb.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shyam-dasgupta/mongo-query-builder/internal/logging"
	"github.com/shyam-dasgupta/mongo-query-builder/pkg/mongoquery"
	"github.com/shyam-dasgupta/mongo-query-builder/pkg/version"
)

var debugMode bool

// NewRootCmd creates the root command for the mqb CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mqb",
		Short: "Build MongoDB filter documents from the command line",
		Long: `mqb builds MongoDB filter documents from declarative YAML query files
and shows the regex patterns a search string compiles to.

The heavy lifting lives in pkg/mongoquery; this tool is a thin wrapper
for inspecting what a query composes down to.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("mqb version {{.Version}}\n")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to stderr")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newSearchCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// builderOptions wires debug logging into the builder when requested.
func builderOptions() []mongoquery.Option {
	if !debugMode {
		return nil
	}
	log := logging.Setup(logging.DebugConfig(), os.Stderr)
	slog.SetDefault(log)
	return []mongoquery.Option{mongoquery.WithLogger(log)}
}
