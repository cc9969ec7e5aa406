package cli

// This file implements the "status" command: read-only listings of the
// resources in a namespace. Nothing here mutates cluster state, so every
// operation can be repeated freely.

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Release is one entry of `helm list -o json`, decoded only for display.
type Release struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Chart     string `json:"chart"`
	Status    string `json:"status"`
	Updated   string `json:"updated"`
}

// StatusManager handles read-only resource inspection with injected dependencies.
type StatusManager struct {
	kubectl *ToolClient
	helm    *ToolClient
	logger  *zap.Logger
}

// NewStatusManager creates a StatusManager with the given dependencies.
func NewStatusManager(kubectl, helm *ToolClient, logger *zap.Logger) *StatusManager {
	return &StatusManager{
		kubectl: kubectl,
		helm:    helm,
		logger:  logger,
	}
}

// DefaultStatusManager returns a StatusManager using default clients.
func DefaultStatusManager(logger *zap.Logger) *StatusManager {
	return NewStatusManager(kubectlClient, helmClient, logger)
}

// NewStatusCmd builds the status subcommand.
func NewStatusCmd(logger *zap.Logger) *cobra.Command {
	mgr := DefaultStatusManager(logger)
	return NewStatusCmdWithManager(mgr)
}

// NewStatusCmdWithManager returns the status subcommand using the provided manager.
func NewStatusCmdWithManager(mgr *StatusManager) *cobra.Command {
	var namespace string
	var resource string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check resource status in a namespace",
		Long:  "List pods, services, deployments, ingresses, Helm releases, or events in a namespace",
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				err := newWithSentinel(ErrNamespaceRequired, "namespace is required (use --namespace)")
				Error("Namespace required")
				logStructuredError(mgr.logger, err, "Namespace required")
				return err
			}
			return mgr.Show(namespace, resource)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Namespace to inspect (required)")
	cmd.Flags().StringVar(&resource, "resource", "all", "Resource view: all|pods|services|deployments|ingresses|releases|events")

	return cmd
}

// Show dispatches to the listing for the requested resource view.
func (m *StatusManager) Show(namespace, resource string) error {
	if err := validateNamespace(namespace); err != nil {
		Error(err.Error())
		logStructuredError(m.logger, err, "Invalid namespace name")
		return err
	}

	switch resource {
	case "", "all":
		return m.ShowAll(namespace)
	case "pods":
		return m.ShowResource(namespace, "pods")
	case "services":
		return m.ShowResource(namespace, "svc")
	case "deployments":
		return m.ShowResource(namespace, "deployments")
	case "ingresses":
		return m.ShowResource(namespace, "ingress")
	case "releases":
		return m.ShowReleases(namespace)
	case "events":
		return m.ShowEvents(namespace)
	default:
		err := newWithSentinel(nil, fmt.Sprintf("unknown resource view %q (use all|pods|services|deployments|ingresses|releases|events)", resource))
		Error("Unknown resource view")
		logStructuredError(m.logger, err, "Unknown resource view")
		return err
	}
}

// ShowAll prints a summary of every resource in the namespace.
func (m *StatusManager) ShowAll(namespace string) error {
	Info(fmt.Sprintf("All resources in namespace '%s':", namespace))

	// #nosec G204 -- fixed kubectl verbs, namespace validated by caller.
	if err := m.kubectl.RunWithOutput([]string{"get", "all", "-n", namespace}, os.Stdout, os.Stderr); err != nil {
		return m.wrapListErr(err, namespace, "all")
	}
	// #nosec G204 -- fixed kubectl verbs, namespace validated by caller.
	_ = m.kubectl.RunWithOutput([]string{"get", "ingress", "-n", namespace}, os.Stdout, os.Stderr)
	// #nosec G204 -- fixed helm verbs, namespace validated by caller.
	_ = m.helm.RunWithOutput([]string{"list", "-n", namespace}, os.Stdout, os.Stderr)
	return nil
}

// ShowResource lists one kubectl resource type in the namespace.
func (m *StatusManager) ShowResource(namespace, resource string) error {
	Info(fmt.Sprintf("%s in namespace '%s':", titleCase(resource), namespace))

	// #nosec G204 -- fixed kubectl verbs, namespace validated by caller.
	if err := m.kubectl.RunWithOutput([]string{"get", resource, "-n", namespace}, os.Stdout, os.Stderr); err != nil {
		return m.wrapListErr(err, namespace, resource)
	}
	return nil
}

// Describe prints the cluster's description of one resource.
func (m *StatusManager) Describe(namespace, resource, name string) error {
	// #nosec G204 -- fixed kubectl verbs, names from prompt/flag.
	if err := m.kubectl.RunWithOutput([]string{"describe", resource, name, "-n", namespace}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrDescribeResourceFailed,
			err,
			fmt.Sprintf("failed to describe %s %s: %v", resource, name, err),
			map[string]any{"namespace": namespace, "resource": resource, "name": name, "component": "status"},
		)
		Error(fmt.Sprintf("Failed to describe %s: %s", resource, name))
		logStructuredError(m.logger, wrappedErr, "Failed to describe resource")
		return wrappedErr
	}
	return nil
}

// PodLogs prints the logs of one pod.
func (m *StatusManager) PodLogs(namespace, pod string) error {
	// #nosec G204 -- fixed kubectl verbs, pod name from prompt/flag.
	if err := m.kubectl.RunWithOutput([]string{"logs", pod, "-n", namespace}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrFetchLogsFailed,
			err,
			fmt.Sprintf("failed to fetch logs for pod %s: %v", pod, err),
			map[string]any{"namespace": namespace, "pod": pod, "component": "status"},
		)
		Error(fmt.Sprintf("Failed to fetch logs for pod: %s", pod))
		logStructuredError(m.logger, wrappedErr, "Failed to fetch pod logs")
		return wrappedErr
	}
	return nil
}

// ShowEvents lists the namespace's events, most recent last.
func (m *StatusManager) ShowEvents(namespace string) error {
	Info(fmt.Sprintf("Events in namespace '%s':", namespace))

	// #nosec G204 -- fixed kubectl verbs, namespace validated by caller.
	if err := m.kubectl.RunWithOutput([]string{"get", "events", "--sort-by=.metadata.creationTimestamp", "-n", namespace}, os.Stdout, os.Stderr); err != nil {
		return m.wrapListErr(err, namespace, "events")
	}
	return nil
}

// ListReleases returns the Helm releases in the namespace.
func (m *StatusManager) ListReleases(namespace string) ([]Release, error) {
	// #nosec G204 -- fixed helm verbs, namespace validated by caller.
	out, err := m.helm.Output([]string{"list", "-n", namespace, "-o", "json"})
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrListReleasesFailed,
			err,
			fmt.Sprintf("failed to list releases in namespace %s: %v", namespace, err),
			map[string]any{"namespace": namespace, "component": "status"},
		)
		logStructuredError(m.logger, wrappedErr, "Failed to list releases")
		return nil, wrappedErr
	}

	var releases []Release
	if err := json.Unmarshal(out, &releases); err != nil {
		wrappedErr := wrapWithSentinel(ErrParseReleasesFailed, err, fmt.Sprintf("failed to parse release listing: %v", err))
		logStructuredError(m.logger, wrappedErr, "Failed to parse release listing")
		return nil, wrappedErr
	}
	return releases, nil
}

// ShowReleases prints the namespace's Helm releases as a table.
func (m *StatusManager) ShowReleases(namespace string) error {
	releases, err := m.ListReleases(namespace)
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		Info(fmt.Sprintf("No Helm releases in namespace '%s'", namespace))
		return nil
	}

	tableData := [][]string{{"Release", "Chart", "Status"}}
	for _, release := range releases {
		status := release.Status
		if status == "deployed" {
			status = Green(status)
		}
		tableData = append(tableData, []string{release.Name, release.Chart, status})
	}
	TableBoxed(tableData)
	return nil
}

// ReleaseStatus prints helm's own status report for one release.
func (m *StatusManager) ReleaseStatus(namespace, release string) error {
	// #nosec G204 -- fixed helm verbs, names from prompt/flag.
	if err := m.helm.RunWithOutput([]string{"status", release, "-n", namespace}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrListReleasesFailed,
			err,
			fmt.Sprintf("failed to get status for release %s: %v", release, err),
			map[string]any{"namespace": namespace, "release": release, "component": "status"},
		)
		Error(fmt.Sprintf("Failed to get status for release: %s", release))
		logStructuredError(m.logger, wrappedErr, "Failed to get release status")
		return wrappedErr
	}
	return nil
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func (m *StatusManager) wrapListErr(err error, namespace, resource string) error {
	wrappedErr := wrapWithSentinelAndContext(
		ErrListResourcesFailed,
		err,
		fmt.Sprintf("failed to list %s in namespace %s: %v", resource, namespace, err),
		map[string]any{"namespace": namespace, "resource": resource, "component": "status"},
	)
	Error(fmt.Sprintf("Failed to list %s in namespace: %s", resource, namespace))
	logStructuredError(m.logger, wrappedErr, "Failed to list resources")
	return wrappedErr
}
