package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewDeleteCmd builds the delete command group. Release deletion runs a
// helm uninstall; namespace deletion shows the namespace contents first
// and requires a typed "yes" before issuing the kubectl delete.
func NewDeleteCmd(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete Prometheus releases or namespaces",
	}
	cmd.AddCommand(newDeleteReleaseCmd(logger))
	cmd.AddCommand(newDeleteNamespaceCmd(logger))
	return cmd
}

func newDeleteReleaseCmd(logger *zap.Logger) *cobra.Command {
	return newDeleteReleaseCmdWithManager(DefaultDeployManager(logger))
}

func newDeleteReleaseCmdWithManager(mgr *DeployManager) *cobra.Command {
	var namespace string
	var release string

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Uninstall a Helm release",
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				return newWithSentinel(ErrNamespaceRequired, "namespace is required")
			}
			if release == "" {
				return newWithSentinel(ErrReleaseRequired, "release name is required")
			}
			return mgr.Uninstall(release, namespace)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace containing the release")
	cmd.Flags().StringVarP(&release, "release", "r", "", "Helm release name")
	return cmd
}

func newDeleteNamespaceCmd(logger *zap.Logger) *cobra.Command {
	return newDeleteNamespaceCmdWithManager(DefaultNamespaceManager(logger), defaultPrompter)
}

func newDeleteNamespaceCmdWithManager(mgr *NamespaceManager, prompter Prompter) *cobra.Command {
	var namespace string
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "namespace",
		Short: "Delete a namespace and everything in it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if namespace == "" {
				return newWithSentinel(ErrNamespaceRequired, "namespace is required")
			}

			Info(fmt.Sprintf("Resources in namespace '%s':", namespace))
			mgr.ShowResources(namespace)

			if !assumeYes {
				Warn(fmt.Sprintf("Deleting namespace '%s' removes ALL resources in it and CANNOT be undone.", namespace))
				answer, err := prompter.Input("Type 'yes' to confirm deletion", "")
				if err != nil {
					return err
				}
				if !strings.EqualFold(strings.TrimSpace(answer), "yes") {
					Info("Namespace deletion cancelled")
					return nil
				}
			}

			return mgr.Delete(namespace)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "Namespace to delete")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
