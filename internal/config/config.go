package config

import "fmt"

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Build   BuildConfig   `mapstructure:"build" yaml:"build"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory    string `mapstructure:"directory" yaml:"directory"`
	ManifestName string `mapstructure:"manifest_name" yaml:"manifest_name"`
	Force        bool   `mapstructure:"force" yaml:"force"`
}

// BuildConfig contains build pipeline settings
type BuildConfig struct {
	Workers int      `mapstructure:"workers" yaml:"workers"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

// CacheConfig contains incremental-build cache settings
type CacheConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration, applying defaults for invalid values
func (c *Config) Validate() error {
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Output.ManifestName == "" {
		c.Output.ManifestName = DefaultManifestName
	}
	if c.Build.Workers <= 0 {
		c.Build.Workers = DefaultWorkers
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("invalid logging format %q", c.Logging.Format)
	}
	return nil
}
