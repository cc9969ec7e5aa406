package cli

import (
	"bytes"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestDeleteReleaseCmd(t *testing.T) {
	t.Run("uninstalls the named release", func(t *testing.T) {
		mock := &MockExecutor{}
		mgr := NewDeployManager(newMockClient(binHelm, mock), newMockClient(binKubectl, mock), zap.NewNop())

		cmd := newDeleteReleaseCmdWithManager(mgr)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--namespace", "azni-prom", "--release", "azni-prom-prom"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		if !mock.HasCommand("uninstall", "azni-prom-prom", "--namespace", "azni-prom") {
			t.Fatalf("unexpected commands: %v", mock.Commands)
		}
	})

	t.Run("missing namespace is rejected", func(t *testing.T) {
		mock := &MockExecutor{}
		mgr := NewDeployManager(newMockClient(binHelm, mock), newMockClient(binKubectl, mock), zap.NewNop())

		cmd := newDeleteReleaseCmdWithManager(mgr)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--release", "azni-prom-prom"})

		if err := cmd.Execute(); !errors.Is(err, ErrNamespaceRequired) {
			t.Fatalf("expected ErrNamespaceRequired, got %v", err)
		}
		if len(mock.Commands) != 0 {
			t.Fatalf("expected no helm calls, got %v", mock.Commands)
		}
	})

	t.Run("missing release is rejected", func(t *testing.T) {
		mock := &MockExecutor{}
		mgr := NewDeployManager(newMockClient(binHelm, mock), newMockClient(binKubectl, mock), zap.NewNop())

		cmd := newDeleteReleaseCmdWithManager(mgr)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--namespace", "azni-prom"})

		if err := cmd.Execute(); !errors.Is(err, ErrReleaseRequired) {
			t.Fatalf("expected ErrReleaseRequired, got %v", err)
		}
	})
}

func TestDeleteNamespaceCmd(t *testing.T) {
	t.Run("typed yes deletes after preview", func(t *testing.T) {
		mock := &MockExecutor{}
		mgr := NewNamespaceManager(newMockClient(binKubectl, mock), zap.NewNop())
		prompter := &scriptPrompter{answers: []string{"yes"}}

		cmd := newDeleteNamespaceCmdWithManager(mgr, prompter)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--namespace", "azni-prom"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		if !mock.HasCommand("get", "all", "-n", "azni-prom") {
			t.Fatalf("expected resource preview, got %v", mock.Commands)
		}
		if !mock.HasCommand("delete", "namespace", "azni-prom") {
			t.Fatalf("expected namespace delete, got %v", mock.Commands)
		}
	})

	t.Run("any other answer cancels", func(t *testing.T) {
		mock := &MockExecutor{}
		mgr := NewNamespaceManager(newMockClient(binKubectl, mock), zap.NewNop())
		prompter := &scriptPrompter{answers: []string{"y"}}

		cmd := newDeleteNamespaceCmdWithManager(mgr, prompter)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--namespace", "azni-prom"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		if mock.HasCommand("delete", "namespace", "azni-prom") {
			t.Fatalf("cancelled deletion must not run, got %v", mock.Commands)
		}
	})

	t.Run("--yes skips the prompt", func(t *testing.T) {
		mock := &MockExecutor{}
		mgr := NewNamespaceManager(newMockClient(binKubectl, mock), zap.NewNop())
		prompter := &scriptPrompter{}

		cmd := newDeleteNamespaceCmdWithManager(mgr, prompter)
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--namespace", "azni-prom", "--yes"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
		if !mock.HasCommand("delete", "namespace", "azni-prom") {
			t.Fatalf("expected namespace delete, got %v", mock.Commands)
		}
	})
}
