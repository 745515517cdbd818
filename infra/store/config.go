package store

import "fmt"

// Config selects and configures the occupancy data source.
type Config struct {
	// Driver selects the backend: "sqlite" or "influx".
	Driver string `json:"driver"`
	// Groups, when set, is the allowed categorical domain of group names.
	// Loading a record with a name outside the set fails.
	Groups []string `json:"groups"`
	// Parents, when set, is the allowed categorical domain of parent names.
	Parents []string     `json:"parents"`
	SQLite  SQLiteConfig `json:"sqlite"`
	Influx  InfluxConfig `json:"influx"`
}

// SQLiteConfig points at the local dump database.
type SQLiteConfig struct {
	Path string `json:"path"`
}

// InfluxConfig points at an InfluxDB bucket holding occupancy dumps.
type InfluxConfig struct {
	URL         string `json:"url"`
	Token       string `json:"token"`
	Org         string `json:"org"`
	Bucket      string `json:"bucket"`
	Measurement string `json:"measurement"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Driver == "" {
		c.Driver = "sqlite"
	}
	if c.SQLite.Path == "" {
		c.SQLite.Path = "density.db"
	}
	if c.Influx.Measurement == "" {
		c.Influx.Measurement = "occupancy"
	}
}

// Validate checks mandatory fields for the selected driver.
func (c Config) Validate() error {
	switch c.Driver {
	case "sqlite":
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "influx":
		if c.Influx.URL == "" || c.Influx.Org == "" || c.Influx.Bucket == "" {
			return fmt.Errorf("influx url, org and bucket are required")
		}
	default:
		return fmt.Errorf("unknown database driver %s", c.Driver)
	}
	return nil
}
