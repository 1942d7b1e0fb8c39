package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashfinance/hashchat/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your chat sessions",
	Long:  `List all chat sessions stored by the orchestrator for your user, most recent first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		sessions, err := client.ListSessions(ctx, cfg.UserID)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		list := internal.NewSessionListController()
		list.Refresh(sessions, false)

		displaySessions(list.Sessions())
		return nil
	},
}

func displaySessions(sessions []internal.Session) {
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("No sessions found — start one with `hashchat chat`"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("Found %d session(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Label")+"\t"+titleStyle.Render("Events")+"\t"+titleStyle.Render("Updated")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, session := range sessions {
		label := "Session " + session.ShortID()

		eventCount := "—"
		if len(session.Events) > 0 {
			eventCount = countStyle.Render(strconv.Itoa(len(session.Events)))
		}

		updated := dateStyle.Render("—")
		if session.LastUpdateTime > 0 {
			updated = dateStyle.Render(formatRelativeTime(session.LastUpdate()))
		}

		id := idStyle.Render(session.ID)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, label, eventCount, updated)
	}

	_ = w.Flush()
	fmt.Println()
	fmt.Println(idStyle.Render("Tip: `hashchat show ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID) +
		idStyle.Render("` prints the transcript"))
}

// formatRelativeTime renders a timestamp the way the sidebar does: terse
// for recent sessions, full date for old ones.
func formatRelativeTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
