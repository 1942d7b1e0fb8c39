package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashfinance/hashchat/internal"
	"github.com/spf13/cobra"
)

var (
	sendSessionID string
	sendPlay      bool
)

var sendCmd = &cobra.Command{
	Use:   "send <message...>",
	Short: "Send one message and print the reply",
	Long: `Send a single message to the assistant and print its reply.

Without --session the most recently updated session is used; if none
exists a new one is created first. With --play a synthesized audio reply
is played through the system audio player after printing.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
		defer cancel()

		sessionID := sendSessionID
		if sessionID == "" {
			sessionID, err = resolveTargetSession(ctx, client, cfg.UserID)
			if err != nil {
				return err
			}
		}

		res, err := client.SendMessage(ctx, sessionID, cfg.UserID, text)
		if err != nil {
			return fmt.Errorf("failed to get a response: %w", err)
		}

		fmt.Println(res.ResponseText)
		if res.AudioPath != "" {
			fmt.Println(audioNoteStyle.Render("audio: " + client.AudioURL(res.AudioPath)))
			if sendPlay {
				if err := client.PlayAudio(ctx, res.AudioPath); err != nil {
					internal.LogWarn("Audio playback failed: %v", err)
				}
			}
		}
		return nil
	},
}

// resolveTargetSession picks the most recent session, creating one when the
// user has none yet. This is the same fallback the sidebar applies on an
// empty refresh.
func resolveTargetSession(ctx context.Context, client *internal.Client, userID string) (string, error) {
	sessions, err := client.ListSessions(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to list sessions: %w", err)
	}

	list := internal.NewSessionListController()
	list.Refresh(sessions, true)

	if id, ok := list.Active().ID(); ok {
		internal.LogDebug("Using most recent session %s", id)
		return id, nil
	}

	id, err := client.CreateSession(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	internal.LogInfo("Created session %s", id)
	return id, nil
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendSessionID, "session", "s", "", "Session id to send into (default: most recent)")
	sendCmd.Flags().BoolVar(&sendPlay, "play", false, "Play a synthesized audio reply, if any")
}
