package cli

// This file defines configuration for the CLI: environment-driven defaults
// loaded once at startup, and the per-session cluster connection persisted
// under the user's home directory.

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Chart coordinates for the sandbox Prometheus deployment.
const (
	chartRepoName = "prometheus-community"
	chartRef      = "prometheus-community/prometheus"
)

const (
	defaultRegion       = "us-east-1"
	defaultClusterName  = "shared-eks-cluster"
	defaultChartVersion = "27.5.1"
	defaultChartRepoURL = "https://prometheus-community.github.io/helm-charts"
)

// CLIConfig carries environment-driven defaults for prompts and flags.
type CLIConfig struct {
	Region       string
	ClusterName  string
	ChartVersion string
	ChartRepoURL string
	Domain       string
}

// LoadCLIConfig reads configuration from environment variables, falling
// back to compiled defaults.
func LoadCLIConfig() *CLIConfig {
	return &CLIConfig{
		Region:       envOr("EKSPROM_REGION", defaultRegion),
		ClusterName:  envOr("EKSPROM_CLUSTER", defaultClusterName),
		ChartVersion: envOr("EKSPROM_CHART_VERSION", defaultChartVersion),
		ChartRepoURL: envOr("EKSPROM_CHART_REPO", defaultChartRepoURL),
		Domain:       envOr("EKSPROM_DOMAIN", ""),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// DefaultCLIConfig is loaded once at startup. Tests swap it out.
var DefaultCLIConfig = LoadCLIConfig()

// SessionConfig records the cluster the operator last connected to, so a
// new run can default its prompts to the previous answers. It is advisory
// only; the kubeconfig written by the aws CLI is the real connection state.
type SessionConfig struct {
	Region  string `yaml:"region"`
	Cluster string `yaml:"cluster"`
}

func sessionConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".eksprom", "session.yaml"), nil
}

func saveSessionConfig(cfg *SessionConfig) error {
	path, err := sessionConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func loadSessionConfig() (*SessionConfig, error) {
	path, err := sessionConfigPath()
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- path is scoped to the user's config directory.
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapWithSentinel(ErrReadSessionFailed, err, fmt.Sprintf("failed to read session config: %v", err))
	}
	var cfg SessionConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, wrapWithSentinel(ErrUnmarshalSessionFailed, err, fmt.Sprintf("failed to unmarshal session config: %v", err))
	}
	return &cfg, nil
}

// sessionDefaults returns the region and cluster to offer as prompt
// defaults: the saved session when one exists, otherwise env/compiled
// defaults.
func sessionDefaults() (region, cluster string) {
	region = DefaultCLIConfig.Region
	cluster = DefaultCLIConfig.ClusterName
	if saved, err := loadSessionConfig(); err == nil && saved != nil {
		if saved.Region != "" {
			region = saved.Region
		}
		if saved.Cluster != "" {
			cluster = saved.Cluster
		}
	}
	return region, cluster
}
