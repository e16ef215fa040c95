package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SourceConfig is one entry under the datasources key of the config file.
type SourceConfig struct {
	Name         string `mapstructure:"name"`
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	Default      bool   `mapstructure:"default"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// LoadSourceConfigs parses and validates the datasources section. Names must
// be unique and exactly one entry must be marked default, so commands without
// --source know where to connect.
func LoadSourceConfigs() ([]SourceConfig, error) {
	var configs []SourceConfig

	if err := viper.UnmarshalKey("datasources", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse datasources config: %w", err)
	}
	if len(configs) == 0 {
		return nil, fmt.Errorf("no datasources defined in config")
	}

	seen := make(map[string]bool)
	defaults := 0
	for i := range configs {
		c := &configs[i]
		if c.Name == "" {
			return nil, fmt.Errorf("datasource #%d has no name", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate datasource name %q", c.Name)
		}
		seen[c.Name] = true
		if c.Driver == "" || c.DSN == "" {
			return nil, fmt.Errorf("datasource %q needs both driver and dsn", c.Name)
		}
		if c.Default {
			defaults++
		}
	}

	if defaults == 0 {
		return nil, fmt.Errorf("no default datasource found in config (set default: true)")
	}
	if defaults > 1 {
		return nil, fmt.Errorf("multiple default datasources found (only one can be default)")
	}

	return configs, nil
}

// FindSourceConfig returns the named datasource, or the default entry when
// name is empty.
func FindSourceConfig(name string) (*SourceConfig, error) {
	configs, err := LoadSourceConfigs()
	if err != nil {
		return nil, err
	}

	if name == "" {
		for i := range configs {
			if configs[i].Default {
				return &configs[i], nil
			}
		}
		return nil, fmt.Errorf("no default datasource found in config (set default: true)")
	}

	var known []string
	for i := range configs {
		if configs[i].Name == name {
			return &configs[i], nil
		}
		known = append(known, configs[i].Name)
	}
	return nil, fmt.Errorf("unknown datasource %q (known: %s)", name, strings.Join(known, ", "))
}
