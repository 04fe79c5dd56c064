package config

import (
	"os"
	"path/filepath"
)

// Default values
const (
	DefaultOutputDir    = "./site"
	DefaultManifestName = "manifest.json"

	DefaultWorkers = 5

	DefaultCacheEnabled = true

	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// DefaultExcludePatterns are source path patterns skipped by the scanner
var DefaultExcludePatterns = []string{
	`(^|/)node_modules/`,
	`(^|/)\.git/`,
	`(^|/)_drafts/`,
}

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docbuild"
	}
	return filepath.Join(home, ".docbuild")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory:    DefaultOutputDir,
			ManifestName: DefaultManifestName,
			Force:        false,
		},
		Build: BuildConfig{
			Workers: DefaultWorkers,
			Exclude: DefaultExcludePatterns,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
