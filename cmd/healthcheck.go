package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashfinance/hashchat/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check configuration and orchestrator reachability",
	Long: `Check the health of hashchat by verifying:
  • Configuration (base URL, user id)
  • Orchestrator reachability
  • Session count for your user
  • Audio player availability

Useful when the chat UI reports transport errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("HashChat Health Check"))
		fmt.Println()

		// Step 1: configuration
		fmt.Println(infoStyle.Render("Step 1: Loading configuration..."))
		cfg, err := loadConfig()
		if err != nil {
			fmt.Println(errorStyle.Render("✗ Failed to load configuration:"), err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Println(errorStyle.Render("✗ No base URL configured"))
			fmt.Printf("   Set %s, --base-url, or base_url in the config file\n", internal.EnvBaseURL)
			os.Exit(1)
		}
		fmt.Println(successStyle.Render("✓ Base URL configured:"), cfg.BaseURL)
		if err := cfg.RequireUser(); err != nil {
			fmt.Println(warningStyle.Render("⚠ No user id configured"))
			fmt.Printf("   Set %s, --user, or user_id in the config file\n", internal.EnvUserID)
		} else {
			fmt.Println(successStyle.Render("✓ User id configured:"), cfg.UserID)
		}
		fmt.Println()

		// Step 2: orchestrator reachability
		fmt.Println(infoStyle.Render("Step 2: Probing the orchestrator..."))
		if cfg.UserID == "" {
			fmt.Println(warningStyle.Render("⚠ Skipped (needs a user id)"))
		} else {
			client, err := internal.NewClient(cfg)
			if err != nil {
				fmt.Println(errorStyle.Render("✗ Client construction failed:"), err)
				os.Exit(1)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			sessions, err := client.ListSessions(ctx, cfg.UserID)
			if err != nil {
				fmt.Println(errorStyle.Render("✗ Orchestrator unreachable:"), err)
				os.Exit(1)
			}
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Orchestrator reachable, %d session(s) found", len(sessions))))
		}
		fmt.Println()

		// Step 3: audio player
		fmt.Println(infoStyle.Render("Step 3: Checking audio playback..."))
		if player, _, err := internal.LookupPlayer(); err != nil {
			fmt.Println(warningStyle.Render("⚠ No audio player found; spoken replies will not play"))
		} else {
			fmt.Println(successStyle.Render("✓ Audio player available:"), player)
		}

		fmt.Println()
		fmt.Println(successStyle.Render("Health check complete"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
