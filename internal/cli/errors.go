package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors for different error categories (CLI, Cluster, Namespace, etc.)
//   - Error wrapping functions that integrate with the errx error system
//   - Structured error logging with context
//   - Debug mode management for error output

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/azniosman/eksprom/pkg/errx"
)

var (
	debugMode   bool
	debugModeMu sync.RWMutex
)

// SetDebugMode sets the global debug mode flag.
// When enabled, logStructuredError will output structured error logs to terminal.
func SetDebugMode(enabled bool) {
	debugModeMu.Lock()
	defer debugModeMu.Unlock()
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled.
func IsDebugMode() bool {
	debugModeMu.RLock()
	defer debugModeMu.RUnlock()
	return debugMode
}

type errorSpec struct {
	code        string
	description string
}

// newSentinelError creates a sentinel error and registers it in errorSpecs in one step.
// This eliminates redundancy between error definitions and errorSpecs mapping.
func newSentinelError(msg string, code, description string) error {
	err := errors.New(msg)
	errorSpecs[err] = errorSpec{code: code, description: description}
	return err
}

// errorSpecs maps sentinel errors to their error codes and descriptions.
// Populated automatically by newSentinelError() during variable initialization.
// Must be declared before sentinel errors to ensure proper initialization order.
var errorSpecs = make(map[error]errorSpec)

// lookupSpec provides a lookup function for errx.FromSentinel.
func lookupSpec(sentinel error) (code, description string) {
	spec := specFor(sentinel)
	return spec.code, spec.description
}

// newWithSentinel creates a new error using the appropriate errx category helper.
// The base error (sentinel) is used to determine the category, and the message provides context.
func newWithSentinel(base error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, nil)
	}
	return errx.FromSentinel(base, lookupSpec, msg, nil)
}

// wrapWithSentinel wraps a cause error using the appropriate errx category helper.
// The base error (sentinel) is used to determine the category, and the message provides context.
func wrapWithSentinel(base, cause error, msg string) error {
	if base == nil {
		return errx.CreateByCode(errx.CodeCLI, errx.DescCLI, msg, cause)
	}
	return errx.FromSentinel(base, lookupSpec, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context.
// This is useful for adding debugging information like namespace, release names, etc.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) error {
	err := wrapWithSentinel(base, cause, msg)
	if errxErr, ok := err.(*errx.Error); ok && len(context) > 0 {
		return errxErr.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
// Errors are defined and registered in one step using newSentinelError to eliminate redundancy.
var (
	// CLI/input errors.
	ErrUsernameRequired  = newSentinelError("username cannot be empty", errx.CodeCLI, errx.DescCLI)
	ErrPurposeRequired   = newSentinelError("purpose cannot be empty", errx.CodeCLI, errx.DescCLI)
	ErrNamespaceRequired = newSentinelError("namespace cannot be empty", errx.CodeCLI, errx.DescCLI)
	ErrInvalidNamespace  = newSentinelError("invalid namespace name", errx.CodeCLI, errx.DescCLI)
	ErrReleaseRequired   = newSentinelError("release name cannot be empty", errx.CodeCLI, errx.DescCLI)

	// Cluster connection errors.
	ErrSetRegionFailed        = newSentinelError("failed to set AWS region", errx.CodeCluster, errx.DescCluster)
	ErrUpdateKubeconfigFailed = newSentinelError("failed to update kubeconfig", errx.CodeCluster, errx.DescCluster)
	ErrClusterNotAccessible   = newSentinelError("cluster not accessible", errx.CodeCluster, errx.DescCluster)

	// Namespace errors.
	ErrCreateNamespaceFailed = newSentinelError("failed to create namespace", errx.CodeNamespace, errx.DescNamespace)
	ErrListNamespacesFailed  = newSentinelError("failed to list namespaces", errx.CodeNamespace, errx.DescNamespace)
	ErrDeleteNamespaceFailed = newSentinelError("failed to delete namespace", errx.CodeNamespace, errx.DescNamespace)

	// Deploy errors.
	ErrHelmNotAvailable      = newSentinelError("helm not available", errx.CodeDeploy, errx.DescDeploy)
	ErrAddChartRepoFailed    = newSentinelError("failed to add chart repository", errx.CodeDeploy, errx.DescDeploy)
	ErrUpdateChartRepoFailed = newSentinelError("failed to update chart repositories", errx.CodeDeploy, errx.DescDeploy)
	ErrRenderValuesFailed    = newSentinelError("failed to render values document", errx.CodeDeploy, errx.DescDeploy)
	ErrWriteValuesFailed     = newSentinelError("failed to write values file", errx.CodeDeploy, errx.DescDeploy)
	ErrDeployReleaseFailed   = newSentinelError("failed to deploy release", errx.CodeDeploy, errx.DescDeploy)
	ErrUninstallFailed       = newSentinelError("failed to uninstall release", errx.CodeDeploy, errx.DescDeploy)

	// Status errors.
	ErrListResourcesFailed    = newSentinelError("failed to list resources", errx.CodeStatus, errx.DescStatus)
	ErrListReleasesFailed     = newSentinelError("failed to list releases", errx.CodeStatus, errx.DescStatus)
	ErrParseReleasesFailed    = newSentinelError("failed to parse release listing", errx.CodeStatus, errx.DescStatus)
	ErrDescribeResourceFailed = newSentinelError("failed to describe resource", errx.CodeStatus, errx.DescStatus)
	ErrFetchLogsFailed        = newSentinelError("failed to fetch pod logs", errx.CodeStatus, errx.DescStatus)

	// Config errors.
	ErrSaveSessionFailed      = newSentinelError("failed to save session config", errx.CodeConfig, errx.DescConfig)
	ErrReadSessionFailed      = newSentinelError("failed to read session config", errx.CodeConfig, errx.DescConfig)
	ErrUnmarshalSessionFailed = newSentinelError("failed to unmarshal session config", errx.CodeConfig, errx.DescConfig)
)

func specFor(base error) errorSpec {
	spec, ok := errorSpecs[base]
	if ok {
		return spec
	}
	return errorSpec{code: errx.CodeCLI, description: errx.DescCLI}
}

// logStructuredError logs an error with structured fields to terminal.
// Only logs when debug mode is enabled (via --debug flag).
// The zap logger is configured with console encoding, so structured fields
// are displayed in a human-readable format in the terminal.
//
// This extracts all context from errx.Error and logs it with structured fields:
// - error.code: "63000"
// - error.category: "Deploy error"
// - error.context.namespace: "azni-prom"
// - error.context.release: "azni-prom-prom"
func logStructuredError(logger *zap.Logger, err error, msg string) {
	if logger == nil || err == nil || !IsDebugMode() {
		return
	}

	var errxErr *errx.Error
	if errors.As(err, &errxErr) {
		fields := []zap.Field{
			zap.String("error.code", errxErr.Code()),
			zap.String("error.category", errxErr.Description()),
			zap.String("error.message", errxErr.Message()),
			zap.Error(err),
		}

		// Add all context fields as individual zap fields for structured output
		if ctx := errxErr.Context(); ctx != nil {
			for key, value := range ctx {
				fields = append(fields, zap.Any("error.context."+key, value))
			}
		}

		// Add cause if present (use distinct field name to avoid duplicate "error" field)
		if cause := errxErr.Cause(); cause != nil {
			fields = append(fields, zap.NamedError("error.cause", cause))
		}

		logger.Error(msg, fields...)
	} else {
		// Fallback for non-errx errors
		logger.Error(msg, zap.Error(err))
	}
}
