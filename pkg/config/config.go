package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 DuplicatePolicy decides what happens when a destination file already exists
type DuplicatePolicy string

const (
	DuplicateSkip      DuplicatePolicy = "skip"
	DuplicateOverwrite DuplicatePolicy = "overwrite"
)

// 📁 FolderPair is one (source root, destination root) mapping
type FolderPair struct {
	Source      string `json:"src_folder" yaml:"src_folder" hcl:"src_folder,attr"`
	Destination string `json:"dst_folder" yaml:"dst_folder" hcl:"dst_folder,attr"`
}

// 📚 Config represents the complete configuration for a sync run
type Config struct {
	FolderPairs     []FolderPair    `json:"folder_pairs" yaml:"folder_pairs" hcl:"pair,block"`
	ExcludeExts     []string        `json:"exclude_exts" yaml:"exclude_exts" hcl:"exclude_exts,attr"`
	ExcludePatterns []string        `json:"exclude_patterns,omitempty" yaml:"exclude_patterns,omitempty" hcl:"exclude_patterns,optional"`
	MaxSizeMB       float64         `json:"max_size_mb" yaml:"max_size_mb" hcl:"max_size_mb,attr"`
	OnDuplicate     DuplicatePolicy `json:"on_duplicate" yaml:"on_duplicate" hcl:"on_duplicate,attr"`
	LogLevel        string          `json:"log_level,omitempty" yaml:"log_level,omitempty" hcl:"log_level,optional"`
}

// 🔍 Validate checks required fields and normalizes the rest
func (cfg *Config) Validate() error {
	if len(cfg.FolderPairs) == 0 {
		return errors.Errorf("folder_pairs is required and must not be empty")
	}
	for i := range cfg.FolderPairs {
		pair := &cfg.FolderPairs[i]
		if pair.Source == "" {
			return errors.Errorf("folder_pairs[%d]: src_folder is required", i)
		}
		if pair.Destination == "" {
			return errors.Errorf("folder_pairs[%d]: dst_folder is required", i)
		}
		pair.Source = filepath.Clean(pair.Source)
		pair.Destination = filepath.Clean(pair.Destination)
	}

	if cfg.ExcludeExts == nil {
		return errors.Errorf("exclude_exts is required (use an empty list to exclude nothing)")
	}
	for i, ext := range cfg.ExcludeExts {
		cfg.ExcludeExts[i] = strings.ToLower(ext)
	}

	for _, pattern := range cfg.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude_patterns: invalid pattern %q", pattern)
		}
	}

	if cfg.MaxSizeMB <= 0 {
		return errors.Errorf("max_size_mb is required and must be positive")
	}

	switch cfg.OnDuplicate {
	case DuplicateSkip, DuplicateOverwrite:
	case "":
		return errors.Errorf("on_duplicate is required")
	default:
		return errors.Errorf("on_duplicate must be %q or %q, got %q", DuplicateSkip, DuplicateOverwrite, cfg.OnDuplicate)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "INFO"
	}

	return nil
}

// 📏 MaxSizeBytes returns the size cap in bytes
func (cfg *Config) MaxSizeBytes() int64 {
	return int64(cfg.MaxSizeMB * 1024 * 1024)
}

// 🎚️ Level maps the configured log level onto a zerolog level.
// Unrecognized values fall back to Info rather than failing the load.
func (cfg *Config) Level() zerolog.Level {
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "CRITICAL":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// 📝 String returns a short description of the run configuration
func (cfg *Config) String() string {
	return fmt.Sprintf("%d pairs, max %.0f MB, on_duplicate=%s", len(cfg.FolderPairs), cfg.MaxSizeMB, cfg.OnDuplicate)
}
