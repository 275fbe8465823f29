// Package config handles XDG configuration directory, session file paths,
// and API base URL resolution.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskchat"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// UserFile is the stored session user filename.
	UserFile = "user.json"

	// EnvAPIURL is the environment variable for the API base URL.
	EnvAPIURL = "TASKCHAT_API_URL"

	// DefaultAPIURL is the local development fallback base URL.
	DefaultAPIURL = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the resolved API base URL.
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskchat or $HOME/.config/taskchat.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// ResolveBaseURL resolves the API base URL and stores it on the config.
// Resolution order: explicit flag value, TASKCHAT_API_URL, hardcoded local
// fallback. Falling back prints a warning to errOut.
func (c *Config) ResolveBaseURL(flagValue string, errOut io.Writer) string {
	switch {
	case flagValue != "":
		c.BaseURL = flagValue
	case os.Getenv(EnvAPIURL) != "":
		c.BaseURL = os.Getenv(EnvAPIURL)
	default:
		if !c.Quiet {
			fmt.Fprintf(errOut, "warning: %s not set, using %s\n", EnvAPIURL, DefaultAPIURL)
		}
		c.BaseURL = DefaultAPIURL
	}
	return c.BaseURL
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// UserPath returns the path to the stored session user file.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
