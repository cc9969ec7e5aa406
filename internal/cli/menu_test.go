package cli

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

// scriptPrompter replays canned answers in order.
type scriptPrompter struct {
	answers  []string
	confirms []bool
}

func (p *scriptPrompter) Input(label, defaultValue string) (string, error) {
	if len(p.answers) == 0 {
		return "", errors.New("script exhausted at prompt: " + label)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

func (p *scriptPrompter) Confirm(label string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, errors.New("script exhausted at confirm: " + label)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func newTestMenu(prompter Prompter, kubectlMock, helmMock, awsMock *MockExecutor) *Menu {
	logger := zap.NewNop()
	kubectl := newMockClient(binKubectl, kubectlMock)
	helm := newMockClient(binHelm, helmMock)
	aws := newMockClient(binAWS, awsMock)
	return NewMenu(
		prompter,
		NewClusterManager(aws, kubectl, logger),
		NewNamespaceManager(kubectl, logger),
		NewDeployManager(helm, kubectl, logger),
		NewStatusManager(kubectl, helm, logger),
		logger,
	)
}

func TestMenuExit(t *testing.T) {
	prompter := &scriptPrompter{answers: []string{"6"}}
	menu := newTestMenu(prompter, &MockExecutor{}, &MockExecutor{}, &MockExecutor{})

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
}

func TestMenuInvalidChoiceReprompts(t *testing.T) {
	prompter := &scriptPrompter{answers: []string{"9", "banana", "", "6"}}
	menu := newTestMenu(prompter, &MockExecutor{}, &MockExecutor{}, &MockExecutor{})

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() must survive junk input: %v", err)
	}
	if len(prompter.answers) != 0 {
		t.Fatalf("expected all answers consumed, %d left", len(prompter.answers))
	}
}

func TestMenuConnect(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	awsMock := &MockExecutor{}
	prompter := &scriptPrompter{answers: []string{"1", "us-east-1", "shared-eks-cluster", "6"}}
	menu := newTestMenu(prompter, &MockExecutor{}, &MockExecutor{}, awsMock)

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !awsMock.HasCommand("configure", "set", "region", "us-east-1") {
		t.Fatalf("expected region command, got %v", awsMock.Commands)
	}
	if !awsMock.HasCommand("update-kubeconfig", "--name", "shared-eks-cluster") {
		t.Fatalf("expected kubeconfig command, got %v", awsMock.Commands)
	}
}

func TestMenuCreateNamespace(t *testing.T) {
	kubectlMock := &MockExecutor{}
	prompter := &scriptPrompter{
		answers:  []string{"2", "azni", "prom", "6"},
		confirms: []bool{true},
	}
	menu := newTestMenu(prompter, kubectlMock, &MockExecutor{}, &MockExecutor{})

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !kubectlMock.HasCommand("create", "namespace", "azni-prom") {
		t.Fatalf("expected namespace create, got %v", kubectlMock.Commands)
	}
}

func TestMenuCreateNamespaceDeclined(t *testing.T) {
	kubectlMock := &MockExecutor{}
	prompter := &scriptPrompter{
		answers:  []string{"2", "azni", "prom", "6"},
		confirms: []bool{false},
	}
	menu := newTestMenu(prompter, kubectlMock, &MockExecutor{}, &MockExecutor{})

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if kubectlMock.HasCommand("create") {
		t.Fatalf("declined confirmation must not create, got %v", kubectlMock.Commands)
	}
}

func TestMenuCreateNamespaceInvalidInputSurvives(t *testing.T) {
	kubectlMock := &MockExecutor{}
	prompter := &scriptPrompter{answers: []string{"2", "", "prom", "6"}}
	menu := newTestMenu(prompter, kubectlMock, &MockExecutor{}, &MockExecutor{})

	// Empty username fails the action but the loop continues to Exit.
	if err := menu.Run(); err != nil {
		t.Fatalf("Run() must survive invalid input: %v", err)
	}
	if len(kubectlMock.Commands) != 0 {
		t.Fatalf("expected no kubectl calls, got %v", kubectlMock.Commands)
	}
}

func TestMenuDeploy(t *testing.T) {
	kubectlMock := &MockExecutor{
		CommandFunc: func(spec ExecSpec) *MockCommand {
			if contains(spec.Args, "namespaces") {
				return &MockCommand{OutputData: []byte("default\nazni-prom\n")}
			}
			return &MockCommand{}
		},
	}
	helmMock := &MockExecutor{}
	// Pick namespace 2 from the listing, accept release and host defaults.
	prompter := &scriptPrompter{answers: []string{"3", "2", "", "", "6"}}
	menu := newTestMenu(prompter, kubectlMock, helmMock, &MockExecutor{})

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !helmMock.HasCommand("repo", "add", chartRepoName) {
		t.Fatalf("expected repo add, got %v", helmMock.Commands)
	}
	if !helmMock.HasCommand("upgrade", "--install", "azni-prom-prom", chartRef, "--namespace", "azni-prom") {
		t.Fatalf("expected install, got %v", helmMock.Commands)
	}
	if !helmMock.HasCommand("--version", "27.5.1") {
		t.Fatalf("expected pinned chart version, got %v", helmMock.Commands)
	}
}

func TestMenuStatusReleases(t *testing.T) {
	kubectlMock := &MockExecutor{
		CommandFunc: func(spec ExecSpec) *MockCommand {
			if contains(spec.Args, "namespaces") {
				return &MockCommand{OutputData: []byte("azni-prom\n")}
			}
			return &MockCommand{}
		},
	}
	helmMock := &MockExecutor{
		CommandFunc: func(spec ExecSpec) *MockCommand {
			if contains(spec.Args, "json") {
				return &MockCommand{OutputData: []byte(`[{"name":"azni-prom-prom","chart":"prometheus-27.5.1","status":"deployed"}]`)}
			}
			return &MockCommand{}
		},
	}
	// Status -> namespace 1 -> releases view -> skip detail -> exit.
	prompter := &scriptPrompter{answers: []string{"4", "1", "6", "", "6"}}
	menu := newTestMenu(prompter, kubectlMock, helmMock, &MockExecutor{})

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !helmMock.HasCommand("list", "-n", "azni-prom", "-o", "json") {
		t.Fatalf("expected helm list, got %v", helmMock.Commands)
	}
}

func TestMenuDeleteRelease(t *testing.T) {
	kubectlMock := &MockExecutor{
		CommandFunc: func(spec ExecSpec) *MockCommand {
			if contains(spec.Args, "namespaces") {
				return &MockCommand{OutputData: []byte("azni-prom\n")}
			}
			return &MockCommand{}
		},
	}
	helmMock := &MockExecutor{
		CommandFunc: func(spec ExecSpec) *MockCommand {
			if contains(spec.Args, "json") {
				return &MockCommand{OutputData: []byte(`[{"name":"azni-prom-prom","chart":"prometheus-27.5.1","status":"deployed"}]`)}
			}
			return &MockCommand{}
		},
	}
	// Delete -> release -> namespace 1 -> release 1 -> exit.
	prompter := &scriptPrompter{answers: []string{"5", "1", "1", "1", "6"}}
	menu := newTestMenu(prompter, kubectlMock, helmMock, &MockExecutor{})

	if err := menu.Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !helmMock.HasCommand("uninstall", "azni-prom-prom", "--namespace", "azni-prom") {
		t.Fatalf("expected uninstall, got %v", helmMock.Commands)
	}
}

func TestMenuDeleteNamespace(t *testing.T) {
	t.Run("typed yes deletes", func(t *testing.T) {
		kubectlMock := &MockExecutor{
			CommandFunc: func(spec ExecSpec) *MockCommand {
				if contains(spec.Args, "namespaces") {
					return &MockCommand{OutputData: []byte("azni-prom\n")}
				}
				return &MockCommand{}
			},
		}
		// Delete -> namespace -> pick 1 -> type yes -> exit.
		prompter := &scriptPrompter{answers: []string{"5", "2", "1", "yes", "6"}}
		menu := newTestMenu(prompter, kubectlMock, &MockExecutor{}, &MockExecutor{})

		if err := menu.Run(); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if !kubectlMock.HasCommand("delete", "namespace", "azni-prom") {
			t.Fatalf("expected namespace delete, got %v", kubectlMock.Commands)
		}
	})

	t.Run("anything except yes cancels", func(t *testing.T) {
		kubectlMock := &MockExecutor{
			CommandFunc: func(spec ExecSpec) *MockCommand {
				if contains(spec.Args, "namespaces") {
					return &MockCommand{OutputData: []byte("azni-prom\n")}
				}
				return &MockCommand{}
			},
		}
		prompter := &scriptPrompter{answers: []string{"5", "2", "1", "no", "6"}}
		menu := newTestMenu(prompter, kubectlMock, &MockExecutor{}, &MockExecutor{})

		if err := menu.Run(); err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		if kubectlMock.HasCommand("delete", "namespace", "azni-prom") {
			t.Fatalf("cancelled deletion must not run, got %v", kubectlMock.Commands)
		}
	})
}

func TestMenuPickNamespaceByName(t *testing.T) {
	kubectlMock := &MockExecutor{
		CommandFunc: func(spec ExecSpec) *MockCommand {
			if contains(spec.Args, "namespaces") {
				return &MockCommand{OutputData: []byte("default\nazni-prom\n")}
			}
			return &MockCommand{}
		},
	}
	menu := newTestMenu(&scriptPrompter{answers: []string{"azni-prom"}}, kubectlMock, &MockExecutor{}, &MockExecutor{})

	namespace, err := menu.pickNamespace("to check")
	if err != nil {
		t.Fatalf("pickNamespace() error: %v", err)
	}
	if namespace != "azni-prom" {
		t.Fatalf("unexpected namespace: %q", namespace)
	}
}

func TestMenuPickNamespaceFallbackWhenListFails(t *testing.T) {
	kubectlMock := &MockExecutor{DefaultErr: errors.New("no kubeconfig")}
	menu := newTestMenu(&scriptPrompter{answers: []string{"azni-prom"}}, kubectlMock, &MockExecutor{}, &MockExecutor{})

	namespace, err := menu.pickNamespace("to check")
	if err != nil {
		t.Fatalf("pickNamespace() error: %v", err)
	}
	if namespace != "azni-prom" {
		t.Fatalf("unexpected namespace: %q", namespace)
	}
}
