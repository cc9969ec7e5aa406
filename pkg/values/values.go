// Package values builds the values document for the prebuilt Prometheus
// Helm chart used in the shared sandbox cluster.
//
// The document is fixed apart from the ingress hostname: the sub-charts the
// sandbox does not need (node-exporter, kube-state-metrics, alertmanager)
// are disabled, persistence is off, and the scrape target list points at
// the shared cluster's monitoring endpoints.
package values

import "gopkg.in/yaml.v3"

// DefaultDomain is the sandbox ingress domain. Rendered hosts take the
// form <namespace>.<domain>.
const DefaultDomain = "sctp-sandbox.com"

// ExternalDNSAnnotation is consumed by external-dns to publish the
// ingress hostname.
const ExternalDNSAnnotation = "external-dns.alpha.kubernetes.io/hostname"

// Document models the subset of the Prometheus chart values the sandbox
// deployment sets. Field order follows the document layout shipped to helm.
type Document struct {
	NodeExporter     Toggle      `yaml:"prometheus-node-exporter"`
	KubeStateMetrics Toggle      `yaml:"kube-state-metrics"`
	Alertmanager     Toggle      `yaml:"alertmanager"`
	ServerFiles      ServerFiles `yaml:"serverFiles"`
	Server           Server      `yaml:"server"`
}

// Toggle enables or disables a sub-chart component.
type Toggle struct {
	Enabled bool `yaml:"enabled"`
}

// ServerFiles carries the embedded prometheus.yml configuration.
type ServerFiles struct {
	PrometheusYML PrometheusConfig `yaml:"prometheus.yml"`
}

// PrometheusConfig is the scrape configuration embedded in the chart values.
type PrometheusConfig struct {
	ScrapeConfigs []ScrapeConfig `yaml:"scrape_configs"`
}

// ScrapeConfig is one scrape job with its static targets.
type ScrapeConfig struct {
	JobName       string         `yaml:"job_name"`
	StaticConfigs []StaticConfig `yaml:"static_configs"`
}

// StaticConfig lists the endpoints a scrape job polls.
type StaticConfig struct {
	Targets []string `yaml:"targets"`
}

// Server configures the Prometheus server sub-chart.
type Server struct {
	PersistentVolume Toggle  `yaml:"persistentVolume"`
	Ingress          Ingress `yaml:"ingress"`
}

// Ingress maps the external hostname to the Prometheus service.
type Ingress struct {
	Enabled          bool              `yaml:"enabled"`
	IngressClassName string            `yaml:"ingressClassName"`
	Hosts            []string          `yaml:"hosts"`
	Annotations      map[string]string `yaml:"annotations"`
}

// HostFor returns the ingress hostname for a namespace. An empty domain
// falls back to DefaultDomain.
func HostFor(namespace, domain string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	return namespace + "." + domain
}

// Default returns the sandbox values document with the given ingress host
// interpolated. Everything else is fixed.
func Default(host string) *Document {
	return &Document{
		NodeExporter:     Toggle{Enabled: false},
		KubeStateMetrics: Toggle{Enabled: false},
		Alertmanager:     Toggle{Enabled: false},
		ServerFiles: ServerFiles{
			PrometheusYML: PrometheusConfig{
				ScrapeConfigs: []ScrapeConfig{
					{
						JobName: "prometheus",
						StaticConfigs: []StaticConfig{
							{Targets: []string{"localhost:9090"}},
						},
					},
					{
						JobName: "node-exporter",
						StaticConfigs: []StaticConfig{
							{Targets: []string{"kube-prometheus-stack-prometheus-node-exporter.monitoring:9100"}},
						},
					},
					{
						JobName: "nginx",
						StaticConfigs: []StaticConfig{
							{Targets: []string{"ingress-nginx-controller-metrics.ingress-nginx:10254"}},
						},
					},
				},
			},
		},
		Server: Server{
			PersistentVolume: Toggle{Enabled: false},
			Ingress: Ingress{
				Enabled:          true,
				IngressClassName: "nginx",
				Hosts:            []string{host},
				Annotations: map[string]string{
					ExternalDNSAnnotation: host,
				},
			},
		},
	}
}

// Render marshals the document to YAML suitable for `helm --values`.
func (d *Document) Render() ([]byte, error) {
	return yaml.Marshal(d)
}
