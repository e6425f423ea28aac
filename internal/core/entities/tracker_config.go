package entities

// DatabaseVariant discriminates the tracker's storage backend.
type DatabaseVariant string

const (
	DatabaseSQLite3 DatabaseVariant = "sqlite3"
	DatabaseMySQL   DatabaseVariant = "mysql"
)

// TrackerCoreConfig carries the tracker's core workload settings.
type TrackerCoreConfig struct {
	Database   DatabaseVariant `json:"database"`
	Private    bool            `json:"private"`
	AdminToken string          `json:"admin_token"`
}

// ListenerConfig is a single UDP or HTTP tracker listener binding.
type ListenerConfig struct {
	BindAddress string `json:"bind_address"`
}

// HTTPApiConfig configures the admin API.
type HTTPApiConfig struct {
	BindAddress string `json:"bind_address"`
	AdminToken  string `json:"admin_token"`
}

// HealthCheckConfig configures the health-check endpoint.
type HealthCheckConfig struct {
	BindAddress string `json:"bind_address"`
}

// PrometheusConfig configures optional metrics scraping.
type PrometheusConfig struct {
	BindAddress string `json:"bind_address"`
}

// GrafanaConfig configures an optional bundled dashboard.
type GrafanaConfig struct {
	AdminPassword string `json:"admin_password"`
}

// HTTPSConfig configures optional TLS termination in front of the tracker.
type HTTPSConfig struct {
	Domain DomainName `json:"domain"`
}

// BackupConfig configures optional periodic database backups.
type BackupConfig struct {
	Enabled bool `json:"enabled"`
}

// TrackerConfig is the full set of tracker-workload settings rendered into
// the container-runtime and config-engine artifacts.
type TrackerConfig struct {
	Core           TrackerCoreConfig `json:"core"`
	UDPTrackers    []ListenerConfig  `json:"udp_trackers"`
	HTTPTrackers   []ListenerConfig  `json:"http_trackers"`
	HTTPApi        HTTPApiConfig     `json:"http_api"`
	HealthCheckApi HealthCheckConfig `json:"health_check_api"`

	Prometheus *PrometheusConfig `json:"prometheus,omitempty"`
	Grafana    *GrafanaConfig    `json:"grafana,omitempty"`
	HTTPS      *HTTPSConfig      `json:"https,omitempty"`
	Backup     *BackupConfig     `json:"backup,omitempty"`
}
