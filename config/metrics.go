package config

import "fmt"

// MetricsConfig controls the Prometheus exposition endpoint.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":2112"
	}
}

// Validate checks mandatory fields.
func (c MetricsConfig) Validate() error {
	if c.PrometheusEnabled && c.PrometheusAddr == "" {
		return fmt.Errorf("prometheus_addr is required when prometheus is enabled")
	}
	return nil
}
