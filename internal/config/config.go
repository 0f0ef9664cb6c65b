package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"tlist/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Discovery settings
	Pattern string
	Kinds   []domain.Kind

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	TestPath   string
	Pattern    string
	Kinds      string
	Qualify    bool
	MarkFailed bool
	Progress   bool
	Verbose    bool
	Format     string
	Output     string
	From       string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		TestPath:    DefaultTestPath,
		Pattern:     DefaultPattern,
		Kinds:       []domain.Kind{domain.KindTest},
		Flags:       Flags{Kinds: DefaultKinds, Format: DefaultExportFormat},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies the env file, environment and flags, in that order
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply layers the env file, environment and flags over the current values
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags

	// The env file is optional; existing environment variables win over it
	_ = godotenv.Load(filepath.Join(c.ProjectPath, DefaultEnvFile))

	if pattern := os.Getenv(EnvPattern); pattern != "" {
		c.Pattern = pattern
	}
	if dirs := os.Getenv(EnvSkipDirs); dirs != "" {
		c.PathsToIgnore = splitList(dirs)
	}

	// Apply flag overrides
	if flags.Pattern != "" {
		c.Pattern = flags.Pattern
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("invalid test file pattern %q: %w", c.Pattern, err)
	}
	if flags.Kinds != "" {
		kinds, err := ParseKinds(flags.Kinds)
		if err != nil {
			return err
		}
		c.Kinds = kinds
	}
	return nil
}

// GetTestPath returns the test path, using flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		// If TestPath is provided, make it relative to ProjectPath if it's not absolute
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}

	// Default: combine project path and test path
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// ParseKinds parses a comma separated list of test kinds
func ParseKinds(s string) ([]domain.Kind, error) {
	var kinds []domain.Kind
	seen := make(map[domain.Kind]bool)
	for _, name := range splitList(s) {
		kind, ok := domain.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown test kind %q", name)
		}
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no test kinds given")
	}
	return kinds, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
