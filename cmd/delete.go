package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a chat session",
	Long: `Permanently delete a session on the orchestrator.

This cannot be undone. Pass --yes to skip the confirmation prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		if !deleteYes {
			fmt.Printf("Permanently delete session %s? [y/N] ", sessionID)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		if err := client.DeleteSession(ctx, cfg.UserID, sessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		fmt.Printf("Deleted session %s\n", sessionID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
