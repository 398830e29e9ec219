// Package site loads the branding shown on every page.
package site

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the branding file. Unset keys keep their defaults.
type Config struct {
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	ThemeColor    string `yaml:"theme_color"`
	DefaultDomain string `yaml:"default_domain"`
	AdminURL      string `yaml:"admin_url"`
	Sample        Sample `yaml:"sample"`
}

// Sample is the file the embed preview pretends was uploaded.
type Sample struct {
	Filename string `yaml:"filename"`
	Size     int64  `yaml:"size"`
}

func Default() Config {
	return Config{
		Title:         "Astral",
		Description:   "Astral is a simple and powerful file hosting platform, with great support, competent developers, and a welcoming community.",
		ThemeColor:    "#e6a3d6",
		DefaultDomain: "i.astral.cool",
		AdminURL:      "/",
		Sample: Sample{
			Filename: "ccb834e0.png",
			Size:     10_030_000,
		},
	}
}

// Loader reads the branding file
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load returns the defaults overlaid with the file. An empty path means no
// file.
func (l *Loader) Load() (Config, error) {
	cfg := Default()
	if l.filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read site file: %w", err)
	}
	data = expandEnv(data)

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse site yaml: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Z0-9_]+)\}`)

// expandEnv replaces ${VAR} references with the environment value.
// Unset variables expand to the empty string.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		return []byte(os.Getenv(string(m[2 : len(m)-1])))
	})
}

func (c Config) validate() error {
	if strings.TrimSpace(c.DefaultDomain) == "" {
		return fmt.Errorf("site: default_domain must not be empty")
	}
	if c.Sample.Size < 0 {
		return fmt.Errorf("site: sample.size must be >= 0, got %d", c.Sample.Size)
	}
	return nil
}
