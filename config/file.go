package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedConfigFormat = errors.New("unsupported site config format")

// LoadFile reads a site config file, YAML or TOML by extension.
// An empty path or a missing file returns (nil, nil).
func LoadFile(filePath string) (*SiteConfig, error) {
	if filePath == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading site config file %s: %w", filePath, err)
	}

	var cfg SiteConfig
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("error unmarshalling site config from %s: %w", filePath, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return nil, fmt.Errorf("error decoding site config from %s: %w", filePath, err)
		}
	default:
		return nil, fmt.Errorf("%w %q: %s", ErrUnsupportedConfigFormat, ext, filePath)
	}

	return &cfg, nil
}
