package fetch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"sigs.k8s.io/yaml"

	"github.com/EtomicBomb/cab/pkg/api/cab"
)

const defaultAPIURL = "https://cab.brown.edu/api/"

// LoadConfig reads a yaml scrape config and fills in the defaults. An empty
// file name yields a pure default config.
func LoadConfig(file string) (*cab.Config, error) {
	config := &cab.Config{}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %v", file, err)
		}
	}
	if config.APIURL == "" {
		config.APIURL = defaultAPIURL
	}
	if config.CacheDir == "" {
		config.CacheDir = filepath.Join(xdg.CacheHome, "cab")
	}
	return config, nil
}
