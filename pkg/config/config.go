package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cli/go-gh/v2/pkg/repository"
	"gopkg.in/yaml.v3"
)

const ConfigFileName = ".gh-issue-batch.yml"

// DefaultLabelColor is used for created labels without a configured color
const DefaultLabelColor = "ededed"

// Config represents the batch configuration
type Config struct {
	Repository string                 `yaml:"repository,omitempty"`
	Source     string                 `yaml:"source,omitempty"`
	Defaults   DefaultsConfig         `yaml:"defaults"`
	Labels     map[string]LabelConfig `yaml:"labels,omitempty"`
	Output     OutputConfig           `yaml:"output"`

	path string
}

// DefaultsConfig represents values applied to every record
type DefaultsConfig struct {
	Labels []string `yaml:"labels"`
}

// LabelConfig describes how a missing label is created
type LabelConfig struct {
	Color       string `yaml:"color,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// OutputConfig represents output settings
type OutputConfig struct {
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Labels: []string{},
		},
		Labels: map[string]LabelConfig{
			"priority:P0": {Color: "b60205", Description: "Blocker"},
			"priority:P1": {Color: "d93f0b", Description: "High priority"},
			"priority:P2": {Color: "fbca04", Description: "Medium priority"},
			"priority:P3": {Color: "0e8a16", Description: "Low priority"},
		},
		Output: OutputConfig{
			Format: "table",
		},
	}
}

// Load loads configuration from the nearest config file
func Load() (*Config, error) {
	configPath := findConfigFile()
	if configPath == "" {
		return nil, fmt.Errorf("configuration file %s not found in current or parent directories", ConfigFileName)
	}
	return LoadFile(configPath)
}

// LoadOrDefault loads the nearest config file, or returns the defaults when there is none
func LoadOrDefault() (*Config, error) {
	if !Exists() {
		return DefaultConfig(), nil
	}
	return Load()
}

// LoadFile loads configuration from path
func LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.path = configPath

	return config, nil
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.path = path
	return nil
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// SourcePath returns the record file path, resolved against the config
// file's directory when relative
func (c *Config) SourcePath() string {
	if c.Source == "" || filepath.IsAbs(c.Source) || c.path == "" {
		return c.Source
	}
	return filepath.Join(filepath.Dir(c.path), c.Source)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Repository != "" {
		if _, err := ParseRepository(c.Repository); err != nil {
			return err
		}
	}

	for _, label := range c.Defaults.Labels {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("default labels must not be empty")
		}
	}

	for name, label := range c.Labels {
		if label.Color != "" && !isHexColor(label.Color) {
			return fmt.Errorf("invalid color '%s' for label '%s': must be 6 hex digits", label.Color, name)
		}
	}

	switch strings.ToLower(c.Output.Format) {
	case "", "table", "json", "csv", "quiet":
	default:
		return fmt.Errorf("invalid output format '%s': must be table, json, csv or quiet", c.Output.Format)
	}

	return nil
}

// LabelColor returns the configured color for name, or the default
func (c *Config) LabelColor(name string) string {
	if l, ok := c.Labels[name]; ok && l.Color != "" {
		return strings.TrimPrefix(l.Color, "#")
	}
	return DefaultLabelColor
}

// LabelDescription returns the configured description for name
func (c *Config) LabelDescription(name string) string {
	return c.Labels[name].Description
}

// LabelNames returns the configured label names, sorted
func (c *Config) LabelNames() []string {
	names := make([]string, 0, len(c.Labels))
	for name := range c.Labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseRepository validates an [HOST/]OWNER/REPO string
func ParseRepository(repo string) (repository.Repository, error) {
	r, err := repository.Parse(repo)
	if err != nil {
		return repository.Repository{}, fmt.Errorf("invalid repository format '%s': must be 'owner/repo': %w", repo, err)
	}
	return r, nil
}

func isHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return false
	}
	for _, ch := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", ch) {
			return false
		}
	}
	return true
}

// findConfigFile searches for config file in current and parent directories
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Exists checks if configuration file exists
func Exists() bool {
	return findConfigFile() != ""
}
