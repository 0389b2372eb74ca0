package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send the shift reminder once",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		bot, err := newTelegramBot(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
		defer cancel()
		return newReminder(cfg, bot).Send(ctx)
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
