package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestCommandRegistration(t *testing.T) {
	want := []string{"serve", "mcp", "add", "search", "resources", "migrate", "version"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	if !strings.Contains(out, "ragbase") {
		t.Errorf("version output missing program name: %q", out)
	}
	if !strings.Contains(out, Version) {
		t.Errorf("version output missing version %q: %q", Version, out)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		input string
		max   int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a longer sentence", 10, "this is a ..."},
		{"collapse   \n  whitespace", 30, "collapse whitespace"},
	}

	for _, tt := range tests {
		if got := summarize(tt.input, tt.max); got != tt.want {
			t.Errorf("summarize(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
		}
	}
}
