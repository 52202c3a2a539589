package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds registry database settings from catalogd.yaml.
type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// TileServerConfig holds the external tile server settings.
type TileServerConfig struct {
	// URL is the tile server base address, e.g. "http://tileserv:7800".
	URL string `yaml:"url"`

	// CatalogPath is the catalog endpoint path, joined to URL.
	CatalogPath string `yaml:"catalog_path,omitempty"`
}

// ZoomConfig bounds the zoom domain used by the prefetcher.
type ZoomConfig struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// PrefetchConfig sizes the background warm pool.
type PrefetchConfig struct {
	Workers *int `yaml:"workers,omitempty"`
	Queue   *int `yaml:"queue,omitempty"`
}

// ProjectConfig is the root of catalogd.yaml.
type ProjectConfig struct {
	Listen     string           `yaml:"listen"`
	TileServer TileServerConfig `yaml:"tileserver"`
	Connection ConnectionConfig `yaml:"connection"`
	Zoom       ZoomConfig       `yaml:"zoom"`
	Prefetch   PrefetchConfig   `yaml:"prefetch"`
}

const ConfigFileName = "catalogd.yaml"

// Load reads and parses catalogd.yaml from the given directory.
func Load(sourcePath string) (*ProjectConfig, error) {
	configPath := filepath.Join(sourcePath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
