package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hashfinance/hashchat/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	baseURL    string
	userID     string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// requestTimeout bounds one-shot command requests. The interactive TUI
// manages its own contexts.
const requestTimeout = 60 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hashchat",
	Short: "Chat with the HashFinance assistant from your terminal",
	Long: `A terminal client for the HashFinance financial-advice assistant.

hashchat talks to the HashFinance orchestrator API: it manages your chat
sessions, relays messages to the assistant, and plays back synthesized
audio replies.

Features:
  • Interactive full-screen chat with a session sidebar
  • List, create, and delete sessions from the command line
  • View and export transcripts (Markdown, JSON, JSONL, YAML)
  • Audio playback of spoken replies

Quick Start:
  hashchat chat                     # Start the interactive chat
  hashchat list                     # List your sessions
  hashchat send "How is AAPL doing?"
  hashchat export <session-id> --format md

Configuration:
  Base URL and user id come from ~/.config/hashchat/config.yaml, the
  HASHCHAT_BASE_URL / HASHCHAT_USER environment variables, or flags.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default ~/.config/hashchat/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Orchestrator API base URL")
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "User id owning the sessions")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig builds the effective config from file, environment, and flags.
func loadConfig() (*internal.Config, error) {
	return internal.LoadConfig(configPath, internal.Config{
		BaseURL: baseURL,
		UserID:  userID,
	})
}

// newClient loads config and constructs the API client, requiring a user id
// since every gateway operation is scoped to one.
func newClient() (*internal.Client, *internal.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.RequireUser(); err != nil {
		return nil, nil, err
	}
	client, err := internal.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}
