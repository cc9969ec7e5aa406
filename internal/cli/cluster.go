package cli

// This file implements the "connect" command. It configures the AWS CLI
// region and updates the local kubeconfig for the shared EKS cluster.
// Connection state lives in the kubeconfig the aws CLI writes; the CLI
// only remembers the answers for the next run's prompt defaults.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ClusterManager handles cluster connection with injected dependencies.
type ClusterManager struct {
	aws     *ToolClient
	kubectl *ToolClient
	logger  *zap.Logger
}

// NewClusterManager creates a ClusterManager with the given dependencies.
func NewClusterManager(aws, kubectl *ToolClient, logger *zap.Logger) *ClusterManager {
	return &ClusterManager{
		aws:     aws,
		kubectl: kubectl,
		logger:  logger,
	}
}

// DefaultClusterManager returns a ClusterManager using default clients.
func DefaultClusterManager(logger *zap.Logger) *ClusterManager {
	return NewClusterManager(awsClient, kubectlClient, logger)
}

// NewConnectCmd builds the connect subcommand.
func NewConnectCmd(logger *zap.Logger) *cobra.Command {
	mgr := DefaultClusterManager(logger)
	return NewConnectCmdWithManager(mgr)
}

// NewConnectCmdWithManager returns the connect subcommand using the provided manager.
func NewConnectCmdWithManager(mgr *ClusterManager) *cobra.Command {
	var region string
	var cluster string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to the shared EKS cluster",
		Long:  "Set the AWS region and update the local kubeconfig for the shared EKS cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return mgr.Connect(region, cluster)
		},
	}

	defRegion, defCluster := sessionDefaults()
	cmd.Flags().StringVar(&region, "region", defRegion, "AWS region")
	cmd.Flags().StringVar(&cluster, "cluster", defCluster, "EKS cluster name")

	return cmd
}

// Connect sets the AWS region and updates the kubeconfig for the cluster.
// Both steps are single best-effort invocations; the external tool's output
// is surfaced as-is.
func (m *ClusterManager) Connect(region, cluster string) error {
	if region == "" {
		region = DefaultCLIConfig.Region
	}
	if cluster == "" {
		cluster = DefaultCLIConfig.ClusterName
	}

	m.logger.Info("Connecting to EKS cluster", zap.String("region", region), zap.String("cluster", cluster))

	// #nosec G204 -- fixed aws verbs, region from prompt/flag.
	if err := m.aws.RunWithOutput([]string{"configure", "set", "region", region}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrSetRegionFailed,
			err,
			fmt.Sprintf("failed to set AWS region %s: %v", region, err),
			map[string]any{"region": region, "component": "cluster"},
		)
		Error("Failed to set AWS region")
		logStructuredError(m.logger, wrappedErr, "Failed to set AWS region")
		return wrappedErr
	}

	// #nosec G204 -- fixed aws verbs, names from prompt/flag.
	if err := m.aws.RunWithOutput([]string{"eks", "update-kubeconfig", "--name", cluster, "--region", region}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrUpdateKubeconfigFailed,
			err,
			fmt.Sprintf("failed to connect to EKS cluster %s: %v", cluster, err),
			map[string]any{"region": region, "cluster": cluster, "component": "cluster"},
		)
		Error(fmt.Sprintf("Failed to connect to EKS cluster: %s", cluster))
		logStructuredError(m.logger, wrappedErr, "Failed to update kubeconfig")
		return wrappedErr
	}

	if err := saveSessionConfig(&SessionConfig{Region: region, Cluster: cluster}); err != nil {
		m.logger.Warn("Failed to save session config", zap.Error(err))
	}

	Success(fmt.Sprintf("Successfully connected to EKS cluster: %s", cluster))
	return nil
}

// CheckCluster verifies the current kubeconfig context can reach a cluster.
func (m *ClusterManager) CheckCluster() error {
	out, err := m.kubectl.CombinedOutput([]string{"cluster-info"})
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrClusterNotAccessible, err, fmt.Sprintf("cluster not accessible: %v", err))
		Error("Cluster not accessible")
		logStructuredError(m.logger, wrappedErr, "Cluster not accessible")
		return wrappedErr
	}
	DefaultPrinter.Printf("%s", string(out))
	return nil
}
