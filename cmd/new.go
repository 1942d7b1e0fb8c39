package cmd

import (
	"context"
	"fmt"

	"github.com/hashfinance/hashchat/internal"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new chat session",
	Long: `Create a fresh session on the orchestrator and print its id.

The id is generated client-side (session-<epoch millis>) and proposed to
the orchestrator; use it with 'hashchat send --session <id>'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		sessionID, err := client.CreateSession(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		internal.LogInfo("Created session %s", sessionID)
		fmt.Println(sessionID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
