// Package config loads the recipebook settings from a YAML file. Option
// functions and command-line flags are applied on top of the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-recipebook/pkg/api"
)

// EnvPath names the environment variable that points at the config file.
const EnvPath = "RECIPEBOOK_CONFIG"

// DefaultRenderer is the list renderer used when none is configured.
const DefaultRenderer = "text"

// Config holds every setting the CLI and the root constructors understand.
type Config struct {
	BaseURL          string        `yaml:"base_url"`
	SessionFile      string        `yaml:"session_file"`
	Renderer         string        `yaml:"renderer"`
	Timeout          time.Duration `yaml:"timeout"`
	ValidateRequests bool          `yaml:"validate_requests"`
	// Contract is a file path or URL of an OpenAPI document replacing the
	// embedded one.
	Contract string `yaml:"contract"`
	Styled   bool   `yaml:"styled"`
}

// Option mutates a Config after the file was read.
type Option func(*Config)

// WithBaseURL overrides the backend origin.
func WithBaseURL(raw string) Option {
	return func(c *Config) {
		if raw = strings.TrimSpace(raw); raw != "" {
			c.BaseURL = raw
		}
	}
}

// WithSessionFile overrides where credentials are kept.
func WithSessionFile(path string) Option {
	return func(c *Config) {
		if path = strings.TrimSpace(path); path != "" {
			c.SessionFile = path
		}
	}
}

// WithRenderer selects the list renderer by name.
func WithRenderer(name string) Option {
	return func(c *Config) {
		if name = strings.TrimSpace(name); name != "" {
			c.Renderer = name
		}
	}
}

// WithTimeout sets the http.Client timeout. Zero keeps the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithValidateRequests toggles contract validation of outgoing requests.
func WithValidateRequests(enabled bool) Option {
	return func(c *Config) {
		c.ValidateRequests = enabled
	}
}

// WithContract points at a custom contract document.
func WithContract(source string) Option {
	return func(c *Config) {
		if source = strings.TrimSpace(source); source != "" {
			c.Contract = source
		}
	}
}

// WithStyles toggles terminal styling.
func WithStyles(enabled bool) Option {
	return func(c *Config) {
		c.Styled = enabled
	}
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:     api.DefaultBaseURL,
		SessionFile: DefaultSessionFile(),
		Renderer:    DefaultRenderer,
	}
}

// DefaultSessionFile is the session file under the user cache directory.
func DefaultSessionFile() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "recipebook", "session.yaml")
}

// Load reads path over the defaults and applies options. An empty path falls
// back to $RECIPEBOOK_CONFIG; when neither is set only defaults are used. A
// path that does not exist is an error.
func Load(path string, options ...Option) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	cfg.SessionFile = os.ExpandEnv(cfg.SessionFile)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode merges YAML data into cfg. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil target")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

// Validate checks the settings for obvious mistakes.
func (c Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("config: base_url %q must be an absolute URL", c.BaseURL))
	}
	if strings.TrimSpace(c.SessionFile) == "" {
		errs = append(errs, errors.New("config: session_file is required"))
	}
	if strings.TrimSpace(c.Renderer) == "" {
		errs = append(errs, errors.New("config: renderer is required"))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("config: timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// Marshal renders cfg as YAML, e.g. for `recipebook config`.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
