package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashfinance/hashchat/internal"
	"github.com/hashfinance/hashchat/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session transcript to file",
	Long: `Fetch a session from the orchestrator and export its transcript in
one of several formats (jsonl, md, yaml, json).

Use 'hashchat list' to see available session ids. Without --output the
transcript is written to <session-id>.<ext> in the current directory;
use '--output -' to write to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID := args[0]

		exporter, err := export.NewExporter(exportFormat)
		if err != nil {
			return err
		}

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

		transcript := internal.NewTranscript(cfg, sessionID, events)

		if exportOutput == "-" {
			return exporter.Export(transcript, os.Stdout)
		}

		outPath := exportOutput
		if outPath == "" {
			outPath = fmt.Sprintf("%s.%s", sessionID, exporter.Extension())
		}
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := exporter.Export(transcript, f); err != nil {
			return fmt.Errorf("failed to export session: %w", err)
		}

		internal.LogInfo("Exported %d message(s)", len(transcript.Messages))
		fmt.Printf("Exported session %s to %s\n", internal.ShortSessionID(sessionID), outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "Export format: jsonl, md, yaml, json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path ('-' for stdout)")
}
