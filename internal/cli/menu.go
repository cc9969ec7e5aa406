package cli

// This file implements the interactive menu, the default mode when eksprom
// runs without a subcommand. Each action is one best-effort attempt; any
// failure is printed and the loop re-prompts, so the operator can retry or
// pick a different action. Only the explicit exit option ends the loop.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/azniosman/eksprom/pkg/values"
)

// Menu drives the interactive loop over the operation managers.
type Menu struct {
	prompter   Prompter
	cluster    *ClusterManager
	namespaces *NamespaceManager
	deploys    *DeployManager
	status     *StatusManager
	logger     *zap.Logger
}

// NewMenu creates a Menu with the given dependencies.
func NewMenu(prompter Prompter, cluster *ClusterManager, namespaces *NamespaceManager, deploys *DeployManager, status *StatusManager, logger *zap.Logger) *Menu {
	return &Menu{
		prompter:   prompter,
		cluster:    cluster,
		namespaces: namespaces,
		deploys:    deploys,
		status:     status,
		logger:     logger,
	}
}

// DefaultMenu returns a Menu using default managers and the pterm prompter.
func DefaultMenu(logger *zap.Logger) *Menu {
	return NewMenu(
		defaultPrompter,
		DefaultClusterManager(logger),
		DefaultNamespaceManager(logger),
		DefaultDeployManager(logger),
		DefaultStatusManager(logger),
		logger,
	)
}

// NewMenuCmd builds the menu subcommand.
func NewMenuCmd(logger *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu",
		Long:  "Menu-driven interface covering connect, namespace, deploy, status, and delete operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return DefaultMenu(logger).Run()
		},
	}
}

// Run loops over the main menu until the operator picks Exit. Action
// failures are printed and never break the loop.
func (m *Menu) Run() error {
	for {
		Header("EKS Prometheus Manager")
		DefaultPrinter.Println("1. Connect to EKS Cluster")
		DefaultPrinter.Println("2. Create Namespace")
		DefaultPrinter.Println("3. Deploy Prometheus")
		DefaultPrinter.Println("4. Check Resource Status")
		DefaultPrinter.Println("5. Delete Resources")
		DefaultPrinter.Println("6. Exit")

		choice, err := m.prompter.Input("Enter your choice (1-6)", "")
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.report(m.runConnect())
		case "2":
			m.report(m.runCreateNamespace())
		case "3":
			m.report(m.runDeploy())
		case "4":
			m.report(m.runStatus())
		case "5":
			m.report(m.runDelete())
		case "6":
			Info("Exiting...")
			return nil
		default:
			Error("Invalid choice")
		}
	}
}

// report prints an action failure without ending the loop.
func (m *Menu) report(err error) {
	if err != nil {
		m.logger.Debug("Menu action failed", zap.Error(err))
	}
}

func (m *Menu) runConnect() error {
	Header("Connecting to EKS Cluster")

	defRegion, defCluster := sessionDefaults()
	region, err := m.prompter.Input("Enter AWS region", defRegion)
	if err != nil {
		return err
	}
	cluster, err := m.prompter.Input("Enter EKS cluster name", defCluster)
	if err != nil {
		return err
	}
	return m.cluster.Connect(region, cluster)
}

func (m *Menu) runCreateNamespace() error {
	Header("Creating Kubernetes Namespace")

	username, err := m.prompter.Input("Enter your username or identifier (e.g., 'azni')", "")
	if err != nil {
		return err
	}
	purpose, err := m.prompter.Input("Enter namespace purpose (e.g., 'eks', 'prom', 'app')", "")
	if err != nil {
		return err
	}

	namespace, err := BuildNamespaceName(username, purpose)
	if err != nil {
		Error(err.Error())
		return err
	}
	Info(fmt.Sprintf("Generated namespace name: %s", namespace))

	ok, err := m.prompter.Confirm(fmt.Sprintf("Create namespace %q?", namespace))
	if err != nil {
		return err
	}
	if !ok {
		Info("Namespace creation cancelled")
		return nil
	}
	return m.namespaces.Create(namespace)
}

func (m *Menu) runDeploy() error {
	Header("Deploying Prometheus")

	if err := m.deploys.EnsureHelm(); err != nil {
		return err
	}
	if err := m.deploys.SetupRepo(); err != nil {
		return err
	}

	namespace, err := m.pickNamespace("for Prometheus deployment")
	if err != nil {
		return err
	}

	release, err := m.prompter.Input("Enter Prometheus release name", namespace+"-prom")
	if err != nil {
		return err
	}
	host, err := m.prompter.Input("Enter hostname for Prometheus ingress", hostDefault(namespace))
	if err != nil {
		return err
	}
	return m.deploys.Deploy(namespace, release, host, "")
}

func (m *Menu) runStatus() error {
	Header("Resource Status Check")

	namespace, err := m.pickNamespace("to check")
	if err != nil {
		return err
	}

	DefaultPrinter.Println("1. All resources (summary)")
	DefaultPrinter.Println("2. Pods")
	DefaultPrinter.Println("3. Services")
	DefaultPrinter.Println("4. Deployments")
	DefaultPrinter.Println("5. Ingresses")
	DefaultPrinter.Println("6. Helm releases")
	DefaultPrinter.Println("7. Events (useful for troubleshooting)")

	choice, err := m.prompter.Input("Enter your choice (1-7)", "")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return m.status.ShowAll(namespace)
	case "2":
		if err := m.status.ShowResource(namespace, "pods"); err != nil {
			return err
		}
		return m.offerPodDetails(namespace)
	case "3":
		if err := m.status.ShowResource(namespace, "svc"); err != nil {
			return err
		}
		return m.offerDescribe(namespace, "svc", "service")
	case "4":
		if err := m.status.ShowResource(namespace, "deployments"); err != nil {
			return err
		}
		return m.offerDescribe(namespace, "deployment", "deployment")
	case "5":
		if err := m.status.ShowResource(namespace, "ingress"); err != nil {
			return err
		}
		return m.offerDescribe(namespace, "ingress", "ingress")
	case "6":
		if err := m.status.ShowReleases(namespace); err != nil {
			return err
		}
		return m.offerReleaseStatus(namespace)
	case "7":
		return m.status.ShowEvents(namespace)
	default:
		Error("Invalid choice")
		return nil
	}
}

func (m *Menu) runDelete() error {
	Header("Deleting Kubernetes Resources")

	DefaultPrinter.Println("1. Delete Prometheus deployment")
	DefaultPrinter.Println("2. Delete namespace")
	DefaultPrinter.Println("3. Back to main menu")

	choice, err := m.prompter.Input("Enter your choice (1-3)", "")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return m.runDeleteRelease()
	case "2":
		return m.runDeleteNamespace()
	case "3":
		return nil
	default:
		Error("Invalid choice")
		return nil
	}
}

func (m *Menu) runDeleteRelease() error {
	namespace, err := m.pickNamespace("containing the Prometheus deployment")
	if err != nil {
		return err
	}

	release := ""
	if releases, err := m.status.ListReleases(namespace); err == nil && len(releases) > 0 {
		Info("Available Helm releases:")
		names := make([]string, 0, len(releases))
		for i, rel := range releases {
			DefaultPrinter.Printf("%d. %s (Chart: %s)\n", i+1, rel.Name, rel.Chart)
			names = append(names, rel.Name)
		}
		release, err = m.pickFrom(names, "Enter release number or name to delete", "")
		if err != nil {
			return err
		}
	} else {
		release, err = m.prompter.Input("Enter Prometheus release name", namespace+"-prom")
		if err != nil {
			return err
		}
	}

	return m.deploys.Uninstall(release, namespace)
}

func (m *Menu) runDeleteNamespace() error {
	namespace, err := m.pickNamespace("to delete")
	if err != nil {
		return err
	}

	Info(fmt.Sprintf("Resources in namespace '%s':", namespace))
	m.namespaces.ShowResources(namespace)

	Warn(fmt.Sprintf("Deleting namespace '%s' removes ALL resources in it and CANNOT be undone.", namespace))
	answer, err := m.prompter.Input("Type 'yes' to confirm deletion", "")
	if err != nil {
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
		Info("Namespace deletion cancelled")
		return nil
	}

	return m.namespaces.Delete(namespace)
}

// pickNamespace lists the cluster's namespaces and lets the operator pick
// by number or name. When the listing fails, it falls back to a free-text
// prompt so the action can still proceed.
func (m *Menu) pickNamespace(usage string) (string, error) {
	Info("Fetching available namespaces...")

	names, err := m.namespaces.List()
	if err != nil || len(names) == 0 {
		namespace, err := m.prompter.Input("Enter namespace "+usage, "")
		if err != nil {
			return "", err
		}
		if namespace == "" {
			err := newWithSentinel(ErrNamespaceRequired, "namespace cannot be empty")
			Error("Namespace cannot be empty")
			return "", err
		}
		return namespace, nil
	}

	Info("Available namespaces:")
	for i, name := range names {
		DefaultPrinter.Printf("%d. %s\n", i+1, name)
	}

	namespace, err := m.pickFrom(names, "Enter namespace number or name "+usage, "")
	if err != nil {
		return "", err
	}
	if namespace == "" {
		err := newWithSentinel(ErrNamespaceRequired, "namespace cannot be empty")
		Error("Namespace cannot be empty")
		return "", err
	}
	Info(fmt.Sprintf("Using namespace: %s", namespace))
	return namespace, nil
}

// pickFrom resolves a numbered selection against options; any non-number
// (or out-of-range number) is taken as a literal name.
func (m *Menu) pickFrom(options []string, label, defaultValue string) (string, error) {
	answer, err := m.prompter.Input(label, defaultValue)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if index, convErr := strconv.Atoi(answer); convErr == nil && index >= 1 && index <= len(options) {
		return options[index-1], nil
	}
	return answer, nil
}

func (m *Menu) offerPodDetails(namespace string) error {
	pod, err := m.prompter.Input("Enter pod name to see details (or press Enter to skip)", "")
	if err != nil || pod == "" {
		return err
	}
	if err := m.status.Describe(namespace, "pod", pod); err != nil {
		return err
	}

	showLogs, err := m.prompter.Confirm("Do you want to see logs for this pod?")
	if err != nil {
		return err
	}
	if showLogs {
		return m.status.PodLogs(namespace, pod)
	}
	return nil
}

func (m *Menu) offerDescribe(namespace, resource, display string) error {
	name, err := m.prompter.Input(fmt.Sprintf("Enter %s name to see details (or press Enter to skip)", display), "")
	if err != nil || name == "" {
		return err
	}
	return m.status.Describe(namespace, resource, name)
}

func (m *Menu) offerReleaseStatus(namespace string) error {
	release, err := m.prompter.Input("Enter release name to see details (or press Enter to skip)", "")
	if err != nil || release == "" {
		return err
	}
	return m.status.ReleaseStatus(namespace, release)
}

func hostDefault(namespace string) string {
	return values.HostFor(namespace, DefaultCLIConfig.Domain)
}
