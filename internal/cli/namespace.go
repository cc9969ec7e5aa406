package cli

// This file implements the "namespace" command. Namespace names are built
// as <username>-<purpose> and must be valid RFC 1123 DNS labels; beyond
// that, uniqueness and any further validation are the cluster's problem.

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rfc1123Label matches valid Kubernetes namespace names.
var rfc1123Label = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

const maxNamespaceLen = 63

// BuildNamespaceName concatenates username and purpose into a namespace
// name and validates it as a DNS label. No uniqueness check is done here;
// an existing namespace fails at creation with the cluster's own error.
func BuildNamespaceName(username, purpose string) (string, error) {
	username = strings.TrimSpace(username)
	purpose = strings.TrimSpace(purpose)
	if username == "" {
		return "", newWithSentinel(ErrUsernameRequired, "username cannot be empty")
	}
	if purpose == "" {
		return "", newWithSentinel(ErrPurposeRequired, "purpose cannot be empty")
	}
	namespace := username + "-" + purpose
	if err := validateNamespace(namespace); err != nil {
		return "", err
	}
	return namespace, nil
}

func validateNamespace(namespace string) error {
	if namespace == "" {
		return newWithSentinel(ErrNamespaceRequired, "namespace cannot be empty")
	}
	if len(namespace) > maxNamespaceLen || !rfc1123Label.MatchString(namespace) {
		return newWithSentinel(ErrInvalidNamespace,
			fmt.Sprintf("invalid namespace name %q: must be a lowercase DNS label (alphanumeric and hyphens)", namespace))
	}
	return nil
}

// NamespaceManager handles namespace operations with injected dependencies.
type NamespaceManager struct {
	kubectl *ToolClient
	logger  *zap.Logger
}

// NewNamespaceManager creates a NamespaceManager with the given dependencies.
func NewNamespaceManager(kubectl *ToolClient, logger *zap.Logger) *NamespaceManager {
	return &NamespaceManager{
		kubectl: kubectl,
		logger:  logger,
	}
}

// DefaultNamespaceManager returns a NamespaceManager using default clients.
func DefaultNamespaceManager(logger *zap.Logger) *NamespaceManager {
	return NewNamespaceManager(kubectlClient, logger)
}

// NewNamespaceCmd builds the namespace subcommand.
func NewNamespaceCmd(logger *zap.Logger) *cobra.Command {
	mgr := DefaultNamespaceManager(logger)
	return NewNamespaceCmdWithManager(mgr)
}

// NewNamespaceCmdWithManager returns the namespace subcommand using the provided manager.
func NewNamespaceCmdWithManager(mgr *NamespaceManager) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "namespace",
		Short: "Manage sandbox namespaces",
		Long:  "Commands for creating and listing per-user sandbox namespaces",
	}

	cmd.AddCommand(mgr.newNamespaceCreateCmd())
	cmd.AddCommand(mgr.newNamespaceListCmd())

	return cmd
}

func (m *NamespaceManager) newNamespaceCreateCmd() *cobra.Command {
	var username string
	var purpose string
	var yes bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a sandbox namespace",
		Long:  "Create a namespace named <username>-<purpose> in the connected cluster",
		RunE: func(cmd *cobra.Command, args []string) error {
			namespace, err := BuildNamespaceName(username, purpose)
			if err != nil {
				Error(err.Error())
				logStructuredError(m.logger, err, "Invalid namespace input")
				return err
			}
			if !yes {
				ok, err := defaultPrompter.Confirm(fmt.Sprintf("Create namespace %q?", namespace))
				if err != nil {
					return err
				}
				if !ok {
					Info("Namespace creation cancelled")
					return nil
				}
			}
			return m.Create(namespace)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Your username or identifier (e.g., 'azni')")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Namespace purpose (e.g., 'eks', 'prom', 'app')")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation prompt")

	return cmd
}

func (m *NamespaceManager) newNamespaceListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List namespaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := m.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				DefaultPrinter.Println(name)
			}
			return nil
		},
	}

	return cmd
}

// Create creates the namespace. An AlreadyExists failure from the cluster
// is surfaced as-is.
func (m *NamespaceManager) Create(namespace string) error {
	if err := validateNamespace(namespace); err != nil {
		Error(err.Error())
		logStructuredError(m.logger, err, "Invalid namespace name")
		return err
	}

	m.logger.Info("Creating namespace", zap.String("namespace", namespace))

	// #nosec G204 -- fixed kubectl verbs, namespace validated above.
	if err := m.kubectl.RunWithOutput([]string{"create", "namespace", namespace}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrCreateNamespaceFailed,
			err,
			fmt.Sprintf("failed to create namespace %s: %v", namespace, err),
			map[string]any{"namespace": namespace, "component": "namespace"},
		)
		Error(fmt.Sprintf("Failed to create namespace: %s", namespace))
		logStructuredError(m.logger, wrappedErr, "Failed to create namespace")
		return wrappedErr
	}

	Success(fmt.Sprintf("Successfully created namespace: %s", namespace))
	return nil
}

// List returns the names of all namespaces in the connected cluster.
func (m *NamespaceManager) List() ([]string, error) {
	// #nosec G204 -- fixed kubectl verbs, no user input.
	out, err := m.kubectl.Output([]string{"get", "namespaces", "-o", "custom-columns=NAME:.metadata.name", "--no-headers"})
	if err != nil {
		wrappedErr := wrapWithSentinel(ErrListNamespacesFailed, err, fmt.Sprintf("failed to list namespaces: %v", err))
		logStructuredError(m.logger, wrappedErr, "Failed to list namespaces")
		return nil, wrappedErr
	}

	var names []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// ShowResources prints every resource in the namespace. Used as a preview
// before deletion.
func (m *NamespaceManager) ShowResources(namespace string) {
	// #nosec G204 -- fixed kubectl verbs, namespace validated by caller.
	_ = m.kubectl.RunWithOutput([]string{"get", "all", "-n", namespace}, os.Stdout, os.Stderr)
}

// Delete removes the namespace and everything in it. Irreversible; the
// caller is responsible for confirmation. Deleting an absent namespace
// surfaces the cluster's NotFound error, never a silent success.
func (m *NamespaceManager) Delete(namespace string) error {
	if err := validateNamespace(namespace); err != nil {
		Error(err.Error())
		logStructuredError(m.logger, err, "Invalid namespace name")
		return err
	}

	m.logger.Info("Deleting namespace", zap.String("namespace", namespace))

	// #nosec G204 -- fixed kubectl verbs, namespace validated above.
	if err := m.kubectl.RunWithOutput([]string{"delete", "namespace", namespace}, os.Stdout, os.Stderr); err != nil {
		wrappedErr := wrapWithSentinelAndContext(
			ErrDeleteNamespaceFailed,
			err,
			fmt.Sprintf("failed to delete namespace %s: %v", namespace, err),
			map[string]any{"namespace": namespace, "component": "namespace"},
		)
		Error(fmt.Sprintf("Failed to delete namespace: %s", namespace))
		logStructuredError(m.logger, wrappedErr, "Failed to delete namespace")
		return wrappedErr
	}

	Success(fmt.Sprintf("Successfully deleted namespace: %s", namespace))
	return nil
}
