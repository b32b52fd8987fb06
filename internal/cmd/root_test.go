package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	if cmd == nil {
		t.Fatal("Root command should not be nil")
	}

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	if err != nil {
		t.Logf("Help command returned error (this is ok): %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "vaultcopy") {
		t.Errorf("Help text should contain 'vaultcopy', got: %s", output)
	}
	if !strings.Contains(output, "vault") {
		t.Errorf("Help text should mention the vault, got: %s", output)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "vaultcopy" {
		t.Errorf("Expected Use to be 'vaultcopy', got '%s'", cmd.Use)
	}

	want := map[string]bool{"copy": false, "plan": false, "index": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("Expected subcommand %q to be registered", name)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	cmd := NewRootCommand()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Logf("Version flag returned error (this is ok): %v", err)
	}

	if !strings.Contains(buf.String(), "version") {
		t.Errorf("Version output should contain 'version', got: %s", buf.String())
	}
}
