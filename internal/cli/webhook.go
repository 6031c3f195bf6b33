package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/example/jiobot/internal/adapters/telegram"
	"github.com/example/jiobot/internal/wire"
)

// WebhookCmd returns the webhook command
func WebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Telegram webhook registration",
		Long:  `Register, inspect, or remove the webhook Telegram delivers updates to.`,
	}

	cmd.AddCommand(webhookSetCmd())
	cmd.AddCommand(webhookInfoCmd())
	cmd.AddCommand(webhookDeleteCmd())

	return cmd
}

func webhookSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [url]",
		Short: "Register the webhook URL",
		Long: `Remove any existing webhook, register a new one, and print its status.

The URL defaults to WEBHOOK_URL and should end in /{SECRET_TOKEN}/.

Examples:
  jiobot webhook set
  jiobot webhook set https://jio.example.com/s3cret/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			url := cfg.WebhookURL
			if len(args) == 1 {
				url = args[0]
			}
			if url == "" {
				fmt.Printf("%s WEBHOOK_URL is not set\n", color.New(color.FgRed).Sprint("❌"))
				fmt.Println("Set it to your deployed app URL + /{SECRET_TOKEN}/")
				return fmt.Errorf("no webhook url")
			}

			bot, err := wire.Bot(cfg, logger)
			if err != nil {
				return err
			}

			fmt.Printf("🔗 Setting webhook to: %s\n", url)
			if err := telegram.SetWebhook(bot, url); err != nil {
				fmt.Printf("%s Failed to set webhook\n", color.New(color.FgRed).Sprint("❌"))
				return err
			}
			fmt.Printf("%s Webhook set\n", color.New(color.FgGreen).Sprint("✓"))
			return printWebhookInfo(bot)
		},
	}
}

func webhookInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the current webhook registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			bot, err := wire.Bot(cfg, logger)
			if err != nil {
				return err
			}
			return printWebhookInfo(bot)
		},
	}
}

func webhookDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drop, _ := cmd.Flags().GetBool("drop-pending")
			cfg, logger, err := loadRuntime(cmd)
			if err != nil {
				return err
			}
			bot, err := wire.Bot(cfg, logger)
			if err != nil {
				return err
			}
			if err := telegram.DeleteWebhook(bot, drop); err != nil {
				return err
			}
			fmt.Printf("%s Webhook removed\n", color.New(color.FgGreen).Sprint("✓"))
			return nil
		},
	}

	cmd.Flags().Bool("drop-pending", false, "Also discard updates Telegram is holding")

	return cmd
}

func printWebhookInfo(bot *tgbotapi.BotAPI) error {
	info, err := telegram.GetWebhookInfo(bot)
	if err != nil {
		return err
	}

	url := info.URL
	if url == "" {
		url = color.New(color.FgYellow).Sprint("(none, polling)")
	}
	fmt.Printf("📡 Webhook URL: %s\n", url)
	fmt.Printf("📊 Pending updates: %d\n", info.PendingUpdateCount)
	if info.LastErrorDate != 0 {
		at := time.Unix(int64(info.LastErrorDate), 0).Format(time.RFC3339)
		fmt.Printf("%s Last error (%s): %s\n", color.New(color.FgRed).Sprint("!"), at, info.LastErrorMessage)
	}
	return nil
}
