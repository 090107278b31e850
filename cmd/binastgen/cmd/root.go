// Package cmd implements the binastgen command line.
package cmd

import (
	"github.com/spf13/cobra"

	"binastgen/internal/logger"
)

// NewRootCmd builds the binastgen command tree.
func NewRootCmd() *cobra.Command {
	var (
		verbose bool
		logJSON bool
	)

	root := &cobra.Command{
		Use:   "binastgen",
		Short: "Generate decoder tables from an IDL schema",
		Long: `Generate C++ helper headers from an IDL schema describing a tree-shaped
data model.

Two artifacts are produced:
  - macro tables listing every interface, union, enumeration, primitive and
    frozen array reachable from the root, with a model-ID per field
  - one enum class per enumeration, members ordered by their string values`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(logJSON, verbose)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (debug) logging")
	root.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newStringsCmd())

	return root
}
