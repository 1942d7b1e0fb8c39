package cmd

import (
	"bytes"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantErr: false,
		},
		{
			name:    "help flag",
			args:    []string{"--help"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			var stdout, stderr bytes.Buffer
			rootCmd.SetOut(&stdout)
			rootCmd.SetErr(&stderr)

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("rootCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"nonexistent-command"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	err := rootCmd.Execute()
	if err == nil {
		t.Error("Execute() should return error for nonexistent command")
	}
}

func TestRootCommand_SubcommandsRegistered(t *testing.T) {
	want := []string{"chat", "list", "new", "delete", "show", "send", "export", "healthcheck"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("subcommand %q not registered on root", name)
		}
	}
}

func TestNewClient_RequiresUser(t *testing.T) {
	t.Setenv("HASHCHAT_BASE_URL", "http://localhost:8000")
	t.Setenv("HASHCHAT_USER", "")

	// No user id from file, env, or flag: client construction must refuse.
	origConfig, origUser := configPath, userID
	configPath = "/nonexistent/config.yaml"
	userID = ""
	defer func() { configPath, userID = origConfig, origUser }()

	_, _, err := newClient()
	if err == nil {
		t.Error("newClient() should fail without a user id")
	}
}
