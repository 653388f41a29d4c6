package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Resource identifies one document of a manifest file.
type Resource struct {
	Kind string
	Name string
}

func (r Resource) String() string {
	return r.Kind + "/" + r.Name
}

type resourceHeader struct {
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
}

// Describe lists the resources declared in a (possibly multi-document) YAML
// manifest. Empty documents are skipped.
func Describe(path string) ([]Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return describe(data)
}

func describe(data []byte) ([]Resource, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var resources []Resource
	for {
		var h resourceHeader
		err := dec.Decode(&h)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing manifest: %w", err)
		}
		if h.Kind == "" {
			continue
		}
		resources = append(resources, Resource{Kind: h.Kind, Name: h.Metadata.Name})
	}
	return resources, nil
}
