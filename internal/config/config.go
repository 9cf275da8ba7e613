package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/validate"
)

// DefaultPath is where the config lives unless --config says otherwise.
const DefaultPath = "~/.config/countdown/config.yaml"

// Data represents the structure of the config file.
type Data struct {
	// Default is the duration preselected in the picker at launch.
	Default countdown.Duration `yaml:"default"`
	UI      UI                 `yaml:"ui"`
}

// UI holds terminal presentation settings.
type UI struct {
	AltScreen  bool   `yaml:"alt_screen"`
	Bell       bool   `yaml:"bell"`
	TintColor  string `yaml:"tint_color" validate:"required,hexcolor"`
	TrackColor string `yaml:"track_color" validate:"required,hexcolor"`
}

// Config handles loading and saving of the config file.
type Config struct {
	Path string `validate:"required"`
	Data Data
}

// Defaults returns the built-in settings.
func Defaults() Data {
	return Data{
		Default: countdown.Duration{Minutes: 0, Seconds: 0},
		UI: UI{
			AltScreen:  true,
			Bell:       true,
			TintColor:  "#6D72C3",
			TrackColor: "#3D5875",
		},
	}
}

// New returns a Config for path, loaded from disk when the file exists.
func New(path string) (*Config, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	c := &Config{Path: expandedPath, Data: Defaults()}
	if err := c.Load(); err != nil {
		// A missing file just means defaults.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return c, nil
}

// NewOrExisting returns the existing config if the file exists, or writes
// the defaults to disk and returns those.
func NewOrExisting(path string) (*Config, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(expandedPath); err == nil {
		return New(path)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	c, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := c.Save(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Load() error {
	logrus.Debug("Loading config file from: ", c.Path)
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, &c.Data); err != nil {
		return err
	}

	// Fall back to defaults for anything out of range instead of refusing to start.
	defaults := Defaults()
	changed := false
	if err := c.Data.Default.Validate(); err != nil {
		logrus.Warnf("Invalid default duration in config (%v); using %s.", err, defaults.Default)
		c.Data.Default = defaults.Default
		changed = true
	}
	if validate.Var(c.Data.UI.TintColor, "required,hexcolor") != nil {
		logrus.Warn("Invalid tint_color in config; using default.")
		c.Data.UI.TintColor = defaults.UI.TintColor
		changed = true
	}
	if validate.Var(c.Data.UI.TrackColor, "required,hexcolor") != nil {
		logrus.Warn("Invalid track_color in config; using default.")
		c.Data.UI.TrackColor = defaults.UI.TrackColor
		changed = true
	}
	if changed {
		return c.Save()
	}
	return nil
}

// Save writes the config data to the file.
func (c *Config) Save() error {
	logrus.Debug("Saving config file to: ", c.Path)
	if err := validate.Struct(c.Data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c.Data)
	if err != nil {
		return err
	}

	return os.WriteFile(c.Path, data, 0o600)
}

// Marshal renders the current settings as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c.Data)
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
