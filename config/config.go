// Package config loads grid configuration: page-size defaults, the
// pagination window width, and which record fields the search stage scans.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the grid's tunables.
type Config struct {
	RowsPerPage   int      `mapstructure:"rows_per_page"`
	WindowWidth   int      `mapstructure:"window_width"`
	QueryField    string   `mapstructure:"query_field"`
	SearchFields  []string `mapstructure:"search_fields"`
	CaseSensitive bool     `mapstructure:"case_sensitive"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		RowsPerPage: 10,
		WindowWidth: 5,
		QueryField:  "q",
	}
}

// Load reads datagrid.yaml from the given directory, falling back to
// defaults for any unset key. A missing file is not an error; every key
// then takes its default.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.SetConfigName("datagrid")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	defaults := Default()
	v.SetDefault("rows_per_page", defaults.RowsPerPage)
	v.SetDefault("window_width", defaults.WindowWidth)
	v.SetDefault("query_field", defaults.QueryField)
	v.SetDefault("search_fields", defaults.SearchFields)
	v.SetDefault("case_sensitive", defaults.CaseSensitive)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config in %s: %w", dir, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config in %s: %w", dir, err)
	}
	if cfg.RowsPerPage < 1 {
		return Config{}, fmt.Errorf("rows_per_page must be positive, got %d", cfg.RowsPerPage)
	}
	return cfg, nil
}
