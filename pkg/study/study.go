package study

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a study config from a YAML file. Relative paths inside the
// config are resolved against the file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading study file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing study YAML: %w", err)
	}

	dir := filepath.Dir(path)
	cfg.Grid.PointsFile = resolve(dir, cfg.Grid.PointsFile)
	cfg.Results.Manifest = resolve(dir, cfg.Results.Manifest)
	cfg.Results.Folder = resolve(dir, cfg.Results.Folder)

	return &cfg, nil
}

// LoadProject loads a study config from a project directory. It looks for
// study.yaml in the given directory.
func LoadProject(projectDir string) (*Config, error) {
	return Load(filepath.Join(projectDir, "study.yaml"))
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
