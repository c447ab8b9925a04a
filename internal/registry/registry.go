// Package registry loads the fixed list of probe targets. The list is read
// once at startup and treated as immutable for the process lifetime.
package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/pingreport/internal/domain"
)

type file struct {
	Targets []domain.Target `yaml:"targets"`
}

// Load reads a yaml targets file:
//
//	targets:
//	  - name: office-router
//	    address: 10.0.0.1
//
// Names may repeat (links to the same site); addresses must be present.
func Load(path string) ([]domain.Target, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("parse targets file: %w", err)
	}

	for i, t := range f.Targets {
		if t.Address == "" {
			return nil, fmt.Errorf("target %d (%q): address is required", i, t.Name)
		}
		if t.Name == "" {
			// fall back to the address as the display name
			f.Targets[i].Name = t.Address
		}
	}
	return f.Targets, nil
}
