package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/jiobot/internal/cli"
	"github.com/example/jiobot/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "jiobot",
		Short:   "Supper Jio Bot - group food orders on Telegram",
		Version: version.String(),
		Long: `jiobot runs a Telegram bot for organising supper jios: one person
opens a jio, shares it into group chats, and everyone adds their order.
Every shared copy of a jio stays in sync as orders come in.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.WebhookCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
