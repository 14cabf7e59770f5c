package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Project is the optional glint.yaml project file, mirroring
// funvibe-funxy's own funxy.yaml project-file convention: search paths
// and default global bindings a CLI invocation should pick up without
// repeating them on every command line.
type Project struct {
	SearchPaths []string          `yaml:"search_paths"`
	Globals     map[string]string `yaml:"globals"`
	Entry       string            `yaml:"entry"`
}

// LoadProject reads and parses a glint.yaml file at path. A missing file
// is not an error - callers treat it as "no project file configured" by
// checking os.IsNotExist on the returned error.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
