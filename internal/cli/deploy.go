package cli

// This file implements the "deploy" command: repo setup and a single
// `helm upgrade --install` of the prebuilt Prometheus chart with the
// rendered values document. The install is not polled for readiness;
// a one-shot resource listing afterwards is a courtesy, not a wait.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/azniosman/eksprom/pkg/values"
)

// DeployManager handles Prometheus deployment with injected dependencies.
type DeployManager struct {
	helm    *ToolClient
	kubectl *ToolClient
	logger  *zap.Logger
}

// NewDeployManager creates a DeployManager with the given dependencies.
func NewDeployManager(helm, kubectl *ToolClient, logger *zap.Logger) *DeployManager {
	return &DeployManager{
		helm:    helm,
		kubectl: kubectl,
		logger:  logger,
	}
}

// DefaultDeployManager returns a DeployManager using default clients.
func DefaultDeployManager(logger *zap.Logger) *DeployManager {
	return NewDeployManager(helmClient, kubectlClient, logger)
}

// NewDeployCmd builds the deploy subcommand.
func NewDeployCmd(logger *zap.Logger) *cobra.Command {
	mgr := DefaultDeployManager(logger)
	return NewDeployCmdWithManager(mgr)
}

// NewDeployCmdWithManager returns the deploy subcommand using the provided manager.
func NewDeployCmdWithManager(mgr *DeployManager) *cobra.Command {
	var namespace string
	var release string
	var host string
	var chartVersion string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy Prometheus to a namespace",
		Long:  "Install or upgrade the Prometheus chart in the target namespace with the sandbox values document",
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				err := newWithSentinel(ErrNamespaceRequired, "namespace is required (use --namespace)")
				Error("Namespace required")
				logStructuredError(mgr.logger, err, "Namespace required")
				return err
			}
			if err := mgr.EnsureHelm(); err != nil {
				return err
			}
			if err := mgr.SetupRepo(); err != nil {
				return err
			}
			return mgr.Deploy(namespace, release, host, chartVersion)
		},
	}

	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace (required)")
	cmd.Flags().StringVar(&release, "release", "", "Release name (default: <namespace>-prom)")
	cmd.Flags().StringVar(&host, "host", "", "Ingress hostname (default: <namespace>.sctp-sandbox.com)")
	cmd.Flags().StringVar(&chartVersion, "chart-version", "", "Chart version (default: "+defaultChartVersion+")")

	return cmd
}

// EnsureHelm verifies the helm binary is reachable. Nothing is installed
// on the operator's behalf; a missing binary is surfaced like any other
// tool failure.
func (m *DeployManager) EnsureHelm() error {
	if _, err := m.helm.CombinedOutput([]string{"version"}); err != nil {
		wrappedErr := wrapWithSentinel(ErrHelmNotAvailable, err, fmt.Sprintf("helm not available: %v", err))
		Error("Helm is not installed or not on PATH")
		logStructuredError(m.logger, wrappedErr, "Helm not available")
		return wrappedErr
	}
	return nil
}

// SetupRepo adds the Prometheus community chart repository and refreshes
// the local repo cache. Both are idempotent helm operations.
func (m *DeployManager) SetupRepo() error {
	m.logger.Info("Adding chart repository", zap.String("repo", chartRepoName))

	// #nosec G204 -- fixed helm verbs, repo URL from internal config.
	if err := m.helm.RunWithOutput([]string{"repo", "add", chartRepoName, DefaultCLIConfig.ChartRepoURL}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrAddChartRepoFailed,
			err,
			fmt.Sprintf("failed to add chart repository: %v", err),
			map[string]any{"repo": chartRepoName, "url": DefaultCLIConfig.ChartRepoURL, "component": "deploy"},
		)
		Error("Failed to add Prometheus chart repository")
		logStructuredError(m.logger, wrappedErr, "Failed to add chart repository")
		return wrappedErr
	}

	// #nosec G204 -- fixed helm verbs, no user input.
	if err := m.helm.RunWithOutput([]string{"repo", "update"}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinel(ErrUpdateChartRepoFailed, err, fmt.Sprintf("failed to update chart repositories: %v", err))
		Error("Failed to update chart repositories")
		logStructuredError(m.logger, wrappedErr, "Failed to update chart repositories")
		return wrappedErr
	}

	return nil
}

// Deploy renders the values document for the namespace and runs a single
// `helm upgrade --install`. Empty release, host, and chartVersion fall
// back to their conventional defaults.
func (m *DeployManager) Deploy(namespace, release, host, chartVersion string) error {
	if err := validateNamespace(namespace); err != nil {
		Error(err.Error())
		logStructuredError(m.logger, err, "Invalid namespace name")
		return err
	}
	if release == "" {
		release = namespace + "-prom"
	}
	if host == "" {
		host = values.HostFor(namespace, DefaultCLIConfig.Domain)
	}
	if chartVersion == "" {
		chartVersion = DefaultCLIConfig.ChartVersion
	}

	m.logger.Info("Deploying Prometheus",
		zap.String("namespace", namespace),
		zap.String("release", release),
		zap.String("host", host),
		zap.String("chart_version", chartVersion))

	doc, err := values.Default(host).Render()
	if err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrRenderValuesFailed,
			err,
			fmt.Sprintf("failed to render values document: %v", err),
			map[string]any{"namespace": namespace, "host": host, "component": "deploy"},
		)
		Error("Failed to render values document")
		logStructuredError(m.logger, wrappedErr, "Failed to render values document")
		return wrappedErr
	}

	valuesFile, err := writeValuesFile(doc)
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrWriteValuesFailed, err, fmt.Sprintf("failed to write values file: %v", err))
		Error("Failed to write values file")
		logStructuredError(m.logger, wrappedErr, "Failed to write values file")
		return wrappedErr
	}
	defer os.Remove(valuesFile)

	// #nosec G204 -- fixed helm verbs, namespace validated, paths internal.
	installArgs := []string{
		"upgrade", "--install", release, chartRef,
		"--version", chartVersion,
		"--values", valuesFile,
		"--namespace", namespace,
	}
	if err := m.helm.RunWithOutput(installArgs, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrDeployReleaseFailed,
			err,
			fmt.Sprintf("failed to deploy Prometheus to namespace %s: %v", namespace, err),
			map[string]any{"namespace": namespace, "release": release, "chart_version": chartVersion, "component": "deploy"},
		)
		Error(fmt.Sprintf("Failed to deploy Prometheus to namespace: %s", namespace))
		logStructuredError(m.logger, wrappedErr, "Failed to deploy Prometheus")
		return wrappedErr
	}

	Success(fmt.Sprintf("Successfully deployed Prometheus to namespace: %s", namespace))
	Info(fmt.Sprintf("Prometheus will be accessible at: http://%s", host))

	m.postDeployCheck(namespace)
	return nil
}

// Uninstall removes a Helm release from the namespace. Irreversible; the
// caller is responsible for confirmation.
func (m *DeployManager) Uninstall(release, namespace string) error {
	if release == "" {
		err := newWithSentinel(ErrReleaseRequired, "release name cannot be empty")
		Error("Release name cannot be empty")
		logStructuredError(m.logger, err, "Release name required")
		return err
	}

	m.logger.Info("Uninstalling release", zap.String("release", release), zap.String("namespace", namespace))

	// #nosec G204 -- fixed helm verbs, names from prompt/flag.
	if err := m.helm.RunWithOutput([]string{"uninstall", release, "--namespace", namespace}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrUninstallFailed,
			err,
			fmt.Sprintf("failed to uninstall release %s: %v", release, err),
			map[string]any{"namespace": namespace, "release": release, "component": "deploy"},
		)
		Error(fmt.Sprintf("Failed to delete Prometheus deployment: %s", release))
		logStructuredError(m.logger, wrappedErr, "Failed to uninstall release")
		return wrappedErr
	}

	Success(fmt.Sprintf("Successfully deleted Prometheus deployment: %s", release))
	return nil
}

// postDeployCheck shows the namespace's pods, services, and ingresses once.
// Best-effort: listing failures right after an install are not deploy errors.
func (m *DeployManager) postDeployCheck(namespace string) {
	Info("Checking deployment status...")
	for _, resource := range []string{"pods", "svc", "ingress"} {
		// #nosec G204 -- fixed kubectl verbs, namespace validated by caller.
		_ = m.kubectl.RunWithOutput([]string{"get", resource, "-n", namespace}, os.Stdout, os.Stderr)
	}
}

// writeValuesFile writes the rendered document to a temp file for helm.
func writeValuesFile(doc []byte) (string, error) {
	tmp, err := os.CreateTemp("", "eksprom-values-*.yaml")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
