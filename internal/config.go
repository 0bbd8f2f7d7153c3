package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Date-picker policies for ambiguous date input.
const (
	DatePickerFuture = "future"
	DatePickerPast   = "past"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Journal JournalConfig     `yaml:"journal"`
	Capture CaptureConfig     `yaml:"capture"`
	Editor  EditorConfig      `yaml:"editor"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if err := c.Capture.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for serve mode.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// JournalConfig locates the dailies directory and names the recognized note
// extensions. The first extension is primary: new notes are created with it.
type JournalConfig struct {
	Path       string   `yaml:"path"`
	Extensions []string `yaml:"extensions"`
	DatePicker string   `yaml:"date_picker"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Extensions, validation.Required, validation.Length(1, 0)),
		validation.Field(&c.DatePicker, validation.In("", DatePickerFuture, DatePickerPast)),
	)
}

// CaptureConfig maps template keys to template bodies. Default names the
// template used when a capture call does not select one.
type CaptureConfig struct {
	Templates map[string]string `yaml:"templates"`
	Default   string            `yaml:"default"`
}

// Validate validates the capture configuration.
func (c *CaptureConfig) Validate() error {
	if c.Default == "" {
		return nil
	}
	if _, ok := c.Templates[c.Default]; !ok {
		return fmt.Errorf("capture: default template %q is not configured", c.Default)
	}
	return nil
}

// EditorConfig holds the editor command and the post-navigation hook.
// Both may be empty; the editor then falls back to $EDITOR.
type EditorConfig struct {
	Command            string `yaml:"command"`
	PostNavigationHook string `yaml:"post_navigation_hook"`
}

// AuthConfig holds serve-mode authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Journal: JournalConfig{
			Path:       "~/daily",
			Extensions: []string{"org"},
			DatePicker: DatePickerFuture,
		},
		Capture: CaptureConfig{
			Templates: map[string]string{
				"default": "\n* {{ .Time }}\n",
			},
			Default: "default",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
