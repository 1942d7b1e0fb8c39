package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashfinance/hashchat/internal"
	"github.com/hashfinance/hashchat/tui"
	"github.com/spf13/cobra"
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat UI",
	Long: `Open the full-screen chat interface: a session sidebar on the left,
the conversation on the right, and an input box at the bottom.

Keys:
  tab         switch focus between sidebar and input
  enter       open the selected session / send the typed message
  ctrl+n      start a new chat
  ctrl+d      delete the selected session (asks for confirmation)
  ctrl+c, esc quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		var initial internal.ActiveSession
		if chatSessionID != "" {
			initial = internal.ActiveSessionID(chatSessionID)
		} else {
			initial = internal.UnresolvedSession()
		}

		app := tui.NewApp(client, cfg, initial)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("chat UI failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatSessionID, "session", "s", "", "Open a specific session instead of the most recent")
}
