// Package seed loads the activity catalog the registry starts from.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mergington/activities/internal/domain/registry"
)

// ErrInvalidSeed indicates a seed document that cannot be used.
var ErrInvalidSeed = errors.New("invalid seed")

//go:embed activities.yaml
var defaultCatalog []byte

type document struct {
	Activities []registry.Activity `yaml:"activities"`
}

// Default returns the built-in catalog.
func Default() ([]registry.Activity, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) ([]registry.Activity, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) ([]registry.Activity, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrInvalidSeed, err)
	}
	if len(doc.Activities) == 0 {
		return nil, fmt.Errorf("%w: no activities", ErrInvalidSeed)
	}
	for i := range doc.Activities {
		if doc.Activities[i].Participants == nil {
			doc.Activities[i].Participants = []string{}
		}
	}
	if err := registry.Validate(doc.Activities); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return doc.Activities, nil
}
