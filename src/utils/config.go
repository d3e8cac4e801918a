package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/market-stats/src/models"
)

const DefaultServerConfigFile = "server-config.yaml"

// LoadServerConfig reads the YAML config at path on top of the defaults and
// then applies PORT and DATA_ROOT from the environment. A missing file leaves
// the defaults in place.
func LoadServerConfig(path string) (*models.ServerConfigYAML, error) {
	config := models.NewDefaultServerConfig()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if len(data) > 0 {
		// a sources block in the file replaces the defaults rather than merging
		defaultSources := config.Sources
		config.Sources = nil

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal server config: %w", err)
		}

		if config.Sources == nil {
			config.Sources = defaultSources
		}
	}

	if port, err := GetEnv("PORT"); err == nil {
		config.Port = port
	}

	if dataRoot, err := GetEnv("DATA_ROOT"); err == nil {
		config.DataRoot = dataRoot
	}

	if len(config.Sources) == 0 {
		return nil, fmt.Errorf("server config %s: no sources configured", path)
	}

	return config, nil
}
