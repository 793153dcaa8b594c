package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "infogram",
	Short: "InfoGram is a Telegram bot that shows public profile details of any user",
	Long: `InfoGram resolves a handle, t.me link, numeric ID, or forwarded message
against the Telegram directory and renders the public profile as a text card.`,
	SilenceErrors: true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}
