package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the XDG config directory.
const FileName = "config.yaml"

// Environment variables read by Load.
const (
	EnvAPIKey      = "MP_API_KEY"
	EnvPymatgenKey = "PMG_MAPI_KEY"
	EnvEndpoint    = "CRYSTALVIEW_ENDPOINT"
)

// DefaultPath returns $XDG_CONFIG_HOME/crystalview/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, FileName)
}

// StatePath returns a path below $XDG_STATE_HOME/crystalview, creating the
// directory.
func StatePath(name string) (string, error) {
	return xdg.StateFile(filepath.Join(AppName, name))
}

// Load builds the configuration: defaults, then the YAML file, then the
// environment. An explicit path that does not exist is an error; a missing
// default file is not.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if !errors.Is(err, ErrConfigNotFound) || explicit {
			return nil, err
		}
	} else {
		cfg.Path = path
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(c.Materials) == 0 {
		c.Materials = DefaultMaterials()
	}
	return nil
}

// applyEnv overrides file values with the environment. MP_API_KEY wins over
// the pymatgen variable.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPymatgenKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
}
