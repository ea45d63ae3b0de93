package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := cfg.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("history is disabled in the config")
			}
			defer store.Close()

			recs, err := store.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range recs {
				at := r.At.Local().Format(time.DateTime)
				if r.Err != "" {
					fmt.Fprintf(out, "%s  %s = error: %s\n", at, r.Expr, r.Err)
				} else {
					fmt.Fprintf(out, "%s  %s = %g\n", at, r.Expr, r.Value)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of records to show")
	return cmd
}
