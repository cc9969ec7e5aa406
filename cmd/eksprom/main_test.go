package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandHelp(t *testing.T) {
	logger, err := newConsoleLogger(false)
	if err != nil {
		t.Fatalf("newConsoleLogger() error: %v", err)
	}
	defer logger.Sync()

	initCommands(logger)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("rootCmd.Execute() error: %v", err)
	}

	if !strings.Contains(out.String(), "eksprom manages Prometheus on a shared EKS cluster") {
		t.Fatalf("help output missing expected text")
	}

	for _, sub := range []string{"connect", "namespace", "deploy", "status", "delete", "menu"} {
		if !strings.Contains(out.String(), sub) {
			t.Fatalf("help output missing %q subcommand", sub)
		}
	}
}
