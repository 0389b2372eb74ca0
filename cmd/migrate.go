package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and provision the wallet",
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

		if err = store.Migrate(ctx); err != nil {
			return err
		}
		ledger, err := newLedger(cfg, store)
		if err != nil {
			return err
		}
		created, err := ledger.ProvisionWallet(ctx, cfg.Ledger.SafetyBuffer)
		if err != nil {
			return err
		}
		if created {
			logrus.Infof("wallet %d provisioned with safety buffer %d", cfg.Ledger.WalletID, cfg.Ledger.SafetyBuffer)
		} else {
			logrus.Infof("wallet %d already exists", cfg.Ledger.WalletID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
