package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sparvlang/sparv/internal/config"
)

// Manifest is the optional sparv.yaml next to a script. Args are
// appended to ARGV after the command-line arguments.
type Manifest struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	Entry   string   `yaml:"entry"`
	Args    []string `yaml:"args"`
}

// Load reads the manifest next to scriptPath. A missing file is not an
// error; a malformed one is.
func Load(scriptPath string) (*Manifest, error) {
	path := filepath.Join(filepath.Dir(scriptPath), config.ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
