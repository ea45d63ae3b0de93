package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "calc",
		Short: "Sandboxed arithmetic calculator",
		Long: "calc evaluates infix arithmetic under a closed allow-list of operators\n" +
			"and named functions. Running it with no arguments starts an interactive\n" +
			"session.",
		// SilenceUsage prevents printing usage on every error
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "config file (default ~/.config/calc/config.yaml)")
	root.Version = version

	root.AddCommand(newEvalCmd())
	root.AddCommand(newREPLCmd())
	root.AddCommand(newHistoryCmd())
	return root
}
