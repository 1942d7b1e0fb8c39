package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashfinance/hashchat/internal"
	"github.com/spf13/cobra"
)

var showPlain bool

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	audioNoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Padding(0, 2)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the transcript of a session",
	Long: `Fetch a session's event log from the orchestrator and print the
conversation. Assistant replies are rendered as markdown unless --plain
is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		events, err := client.FetchEvents(ctx, cfg.UserID, sessionID)
		if err != nil {
			return fmt.Errorf("failed to fetch session: %w", err)
		}

		messages := internal.EventsToMessages(events)

		fmt.Println(sessionHeaderStyle.Render(fmt.Sprintf("Session %s — %d message(s)", internal.ShortSessionID(sessionID), len(messages))))

		var renderer *glamour.TermRenderer
		if !showPlain {
			renderer, err = glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
			if err != nil {
				internal.LogWarn("Markdown renderer unavailable, falling back to plain text: %v", err)
				renderer = nil
			}
		}

		for _, msg := range messages {
			if msg.Role == internal.RoleUser {
				fmt.Println(userMessageStyle.Render("You"))
				fmt.Println(messageContentStyle.Render(msg.Text()))
				continue
			}

			fmt.Println(assistantMessageStyle.Render("HashFinance"))
			switch {
			case msg.Pending():
				fmt.Println(messageContentStyle.Render("(no text)"))
			case renderer != nil:
				out, rerr := renderer.Render(msg.Text())
				if rerr != nil {
					fmt.Println(messageContentStyle.Render(msg.Text()))
				} else {
					fmt.Print(out)
				}
			default:
				fmt.Println(messageContentStyle.Render(msg.Text()))
			}
			if msg.AudioPath != "" {
				fmt.Println(audioNoteStyle.Render("audio: " + client.AudioURL(msg.AudioPath)))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Disable markdown rendering")
}
