package spajsonpo

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the environment into a Config.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// LoadProjectFile reads a YAML project file. Unknown keys are rejected.
func LoadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file %s: %w", path, err)
	}
	var pf ProjectFile
	if err := yaml.UnmarshalStrict(data, &pf); err != nil {
		return nil, fmt.Errorf("parse project file %s: %w", path, err)
	}
	return &pf, nil
}

// ApplyProject overrides cfg with the values set in pf. Key patterns are
// appended.
func (cfg *Config) ApplyProject(pf *ProjectFile) {
	if pf == nil {
		return
	}
	if pf.Converter != "" {
		cfg.ConverterPath = pf.Converter
	}
	if pf.Output != "" {
		cfg.Output = pf.Output
	}
	cfg.KeyPatterns = append(cfg.KeyPatterns, pf.KeyMatch...)
}
