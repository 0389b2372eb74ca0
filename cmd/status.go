package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chucky-1/cashflow/internal/consumer"
)

var flagJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current overview",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
		defer cancel()

		store, closeStore, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		ledger, err := newLedger(cfg, store)
		if err != nil {
			return err
		}
		overview, err := ledger.Overview(ctx)
		if err != nil {
			return err
		}

		if flagJSON {
			out, err := json.MarshalIndent(overview, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), consumer.FormatOverview(overview))
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the overview as JSON")
	rootCmd.AddCommand(statusCmd)
}
