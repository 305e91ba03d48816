package config

import (
	"net/url"
	"strings"
	"time"
)

// Default configuration values.
const (
	// AppName is used for the XDG config and state directories.
	AppName = "crystalview"

	// DefaultEndpoint is the public Materials Project API.
	DefaultEndpoint = "https://api.materialsproject.org"

	// DefaultTimeout bounds one structure fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultMaterial is the identifier shown when nothing else is asked for.
	DefaultMaterial = "mp-1227340"

	// DefaultConcurrency bounds parallel fetches of `show`.
	DefaultConcurrency = 4

	// DefaultListen is the address of `serve`.
	DefaultListen = "127.0.0.1:8501"
)

// Material is an entry of the suggested-materials list.
type Material struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// DefaultMaterials is the suggested list shown in the sidebar.
func DefaultMaterials() []Material {
	return []Material{
		{ID: "mp-53", Name: "Graphene"},
		{ID: "mp-66", Name: "Silicon"},
		{ID: "mp-1234", Name: "Silicon Carbide (SiC)"},
		{ID: "mp-12729", Name: "Lithium Cobalt Oxide (LiCoO2)"},
		{ID: "mp-1285", Name: "Barium Titanate (BaTiO3)"},
		{ID: "mp-149", Name: "Aluminum Oxide (Al2O3)"},
		{ID: "mp-256", Name: "Copper (Cu)"},
		{ID: "mp-100", Name: "Graphite (C)"},
	}
}

// Config holds every option of crystalview. It is built once in the
// command layer and passed down explicitly.
type Config struct {
	// APIKey authenticates against the Materials Project API.
	APIKey string `yaml:"api_key"`

	// Endpoint is the API root URL.
	Endpoint string `yaml:"endpoint"`

	// Timeout bounds one structure fetch.
	Timeout time.Duration `yaml:"timeout"`

	// DefaultMaterial is fetched on startup of the viewer.
	DefaultMaterial string `yaml:"default_material"`

	// Concurrency bounds parallel fetches.
	Concurrency int `yaml:"concurrency"`

	// Listen is the HTTP listen address of `serve`.
	Listen string `yaml:"listen"`

	// Materials is the suggested list.
	Materials []Material `yaml:"materials"`

	// Verbose enables debug logging. Set from the command line only.
	Verbose bool `yaml:"-"`

	// Path is the file the config was read from, empty when none.
	Path string `yaml:"-"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Endpoint:        DefaultEndpoint,
		Timeout:         DefaultTimeout,
		DefaultMaterial: DefaultMaterial,
		Concurrency:     DefaultConcurrency,
		Listen:          DefaultListen,
		Materials:       DefaultMaterials(),
	}
}

// Validate checks option ranges. A missing API key is not an error here;
// it only matters once something is fetched.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidEndpoint
	}
	for _, m := range c.Materials {
		if strings.TrimSpace(m.ID) == "" {
			return ErrInvalidMaterial
		}
	}
	return nil
}
