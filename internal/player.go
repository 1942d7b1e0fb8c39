package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// DownloadAudio streams an audio artifact into w. Artifacts are served as
// plain static files under the orchestrator base URL.
func (c *Client) DownloadAudio(ctx context.Context, audioPath string, w io.Writer) error {
	url := c.AudioURL(audioPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{Op: "download audio", URL: url, Err: err}
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{Op: "download audio", URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Op: "download audio", URL: url, Status: resp.StatusCode}
	}
	_, err = io.Copy(w, resp.Body)
	return err
}

// playerCandidates lists command-line players to try, most preferred first.
var playerCandidates = []string{"mpv", "ffplay", "mpg123", "afplay"}

// LookupPlayer finds an installed command-line audio player and returns the
// command and base arguments to run it with.
func LookupPlayer() (string, []string, error) {
	if runtime.GOOS == "darwin" {
		if path, err := exec.LookPath("afplay"); err == nil {
			return path, nil, nil
		}
	}
	for _, name := range playerCandidates {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		switch name {
		case "mpv":
			return path, []string{"--no-video", "--really-quiet"}, nil
		case "ffplay":
			return path, []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}, nil
		default:
			return path, nil, nil
		}
	}
	return "", nil, fmt.Errorf("no audio player found (tried %v)", playerCandidates)
}

// PlayAudio downloads the artifact to a temp file and blocks until the
// system player finishes. Playback problems are reported, not fatal.
func (c *Client) PlayAudio(ctx context.Context, audioPath string) error {
	player, args, err := LookupPlayer()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "hashchat-*"+filepath.Ext(audioPath))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := c.DownloadAudio(ctx, audioPath, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	LogDebug("Playing %s via %s", audioPath, player)
	cmd := exec.CommandContext(ctx, player, append(args, tmp.Name())...)
	return cmd.Run()
}
