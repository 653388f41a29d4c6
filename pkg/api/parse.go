package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPlan reads a deploy.yaml file, sets Dir/FilePath, applies defaults and
// validates it.
func LoadPlan(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	p.FilePath = absPath
	p.Dir = filepath.Dir(absPath)

	p.ApplyDefaults()

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating plan %s: %w", filename, err)
	}

	return &p, nil
}

// LoadPlanOrDefault loads filename and falls back to the built-in plan rooted
// at dir when filename is the default plan file and does not exist. Any other
// missing file is an error.
func LoadPlanOrDefault(filename, dir string) (*Plan, error) {
	if _, err := os.Stat(filename); err != nil {
		if !os.IsNotExist(err) || !isDefaultPlanFile(filename, dir) {
			return nil, fmt.Errorf("checking plan file: %w", err)
		}

		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolving absolute path: %w", err)
		}

		p := DefaultPlan()
		p.Dir = absDir
		p.ApplyDefaults()
		return p, nil
	}

	return LoadPlan(filename)
}

func isDefaultPlanFile(filename, dir string) bool {
	clean := filepath.Clean(filename)
	return clean == DefaultPlanFile || clean == filepath.Join(dir, DefaultPlanFile)
}
