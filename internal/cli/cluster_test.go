package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestClusterConnect(t *testing.T) {
	t.Run("issues region and kubeconfig commands", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		mock := &MockExecutor{}
		mgr := NewClusterManager(newMockClient(binAWS, mock), newMockClient(binKubectl, mock), zap.NewNop())

		if err := mgr.Connect("us-east-1", "shared-eks-cluster"); err != nil {
			t.Fatalf("Connect() error: %v", err)
		}

		if len(mock.Commands) != 2 {
			t.Fatalf("expected 2 aws calls, got %d", len(mock.Commands))
		}
		first := mock.Commands[0]
		if !contains(first.Args, "configure") || !contains(first.Args, "set") || !contains(first.Args, "region") || !contains(first.Args, "us-east-1") {
			t.Fatalf("unexpected region args: %v", first.Args)
		}
		second := mock.Commands[1]
		if !contains(second.Args, "eks") || !contains(second.Args, "update-kubeconfig") {
			t.Fatalf("unexpected kubeconfig args: %v", second.Args)
		}
		if !contains(second.Args, "--name") || !contains(second.Args, "shared-eks-cluster") {
			t.Fatalf("expected cluster name in args: %v", second.Args)
		}
		if !contains(second.Args, "--region") || !contains(second.Args, "us-east-1") {
			t.Fatalf("expected region in args: %v", second.Args)
		}
	})

	t.Run("empty inputs fall back to config defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		mock := &MockExecutor{}
		mgr := NewClusterManager(newMockClient(binAWS, mock), newMockClient(binKubectl, mock), zap.NewNop())

		if err := mgr.Connect("", ""); err != nil {
			t.Fatalf("Connect() error: %v", err)
		}
		if !mock.HasCommand("region", DefaultCLIConfig.Region) {
			t.Fatalf("expected default region, got %v", mock.Commands[0].Args)
		}
		if !mock.HasCommand("--name", DefaultCLIConfig.ClusterName) {
			t.Fatalf("expected default cluster, got %v", mock.Commands[1].Args)
		}
	})

	t.Run("region failure stops before kubeconfig update", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		mock := &MockExecutor{
			CommandFunc: func(spec ExecSpec) *MockCommand {
				if contains(spec.Args, "configure") {
					return &MockCommand{Err: errors.New("aws not configured")}
				}
				return &MockCommand{}
			},
		}
		mgr := NewClusterManager(newMockClient(binAWS, mock), newMockClient(binKubectl, mock), zap.NewNop())

		err := mgr.Connect("us-east-1", "shared-eks-cluster")
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, ErrSetRegionFailed) {
			t.Fatalf("expected ErrSetRegionFailed, got %v", err)
		}
		if mock.HasCommand("update-kubeconfig") {
			t.Fatal("kubeconfig update must not run after region failure")
		}
	})

	t.Run("kubeconfig failure is surfaced", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		mock := &MockExecutor{
			CommandFunc: func(spec ExecSpec) *MockCommand {
				if contains(spec.Args, "update-kubeconfig") {
					return &MockCommand{Err: errors.New("cluster not found")}
				}
				return &MockCommand{}
			},
		}
		mgr := NewClusterManager(newMockClient(binAWS, mock), newMockClient(binKubectl, mock), zap.NewNop())

		err := mgr.Connect("us-east-1", "missing-cluster")
		if !errors.Is(err, ErrUpdateKubeconfigFailed) {
			t.Fatalf("expected ErrUpdateKubeconfigFailed, got %v", err)
		}
	})

	t.Run("successful connect saves session defaults", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		mock := &MockExecutor{}
		mgr := NewClusterManager(newMockClient(binAWS, mock), newMockClient(binKubectl, mock), zap.NewNop())

		if err := mgr.Connect("ap-southeast-1", "sandbox-eks"); err != nil {
			t.Fatalf("Connect() error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(home, ".eksprom", "session.yaml")); err != nil {
			t.Fatalf("expected session file: %v", err)
		}
		region, cluster := sessionDefaults()
		if region != "ap-southeast-1" || cluster != "sandbox-eks" {
			t.Fatalf("unexpected session defaults: %s/%s", region, cluster)
		}
	})
}

func TestCheckCluster(t *testing.T) {
	t.Run("prints cluster info", func(t *testing.T) {
		mock := &MockExecutor{DefaultOutput: []byte("Kubernetes control plane is running")}
		mgr := NewClusterManager(newMockClient(binAWS, mock), newMockClient(binKubectl, mock), zap.NewNop())

		if err := mgr.CheckCluster(); err != nil {
			t.Fatalf("CheckCluster() error: %v", err)
		}
		if !mock.HasCommand("cluster-info") {
			t.Fatalf("expected cluster-info call, got %v", mock.Commands)
		}
	})

	t.Run("unreachable cluster is an error", func(t *testing.T) {
		mock := &MockExecutor{DefaultErr: errors.New("connection refused")}
		mgr := NewClusterManager(newMockClient(binAWS, mock), newMockClient(binKubectl, mock), zap.NewNop())

		if err := mgr.CheckCluster(); !errors.Is(err, ErrClusterNotAccessible) {
			t.Fatalf("expected ErrClusterNotAccessible, got %v", err)
		}
	})
}
