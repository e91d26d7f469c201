package catalog

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// overridesFile is the on-disk shape of a catalog overrides file:
//
//	services:
//	  - package: com.example.app
//	    name: Example
//	    domain: example.com
//	    category: SOFTWARE
type overridesFile struct {
	Services []Service `yaml:"services"`
}

// LoadOverrides reads extra catalog entries from a YAML file. An empty path
// yields no overrides.
func LoadOverrides(path string) ([]Service, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog overrides: %w", err)
	}
	defer f.Close()

	return ParseOverrides(f)
}

// ParseOverrides decodes catalog overrides from a reader.
func ParseOverrides(r io.Reader) ([]Service, error) {
	var file overridesFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode catalog overrides: %w", err)
	}
	return file.Services, nil
}
