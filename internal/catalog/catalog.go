// Package catalog holds the gym and workout choices offered by the form.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

//go:embed catalog.schema.json
var catalogSchema string

type Catalog struct {
	Gyms     []string `yaml:"gyms" json:"gyms"`
	Workouts []string `yaml:"workouts" json:"workouts"`
}

// Default returns the built-in catalog.
func Default() Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or the built-in one when path is empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML and validates it against the catalog schema.
func Parse(b []byte) (Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Catalog{}, fmt.Errorf("yaml parse: %w", err)
	}
	jb, err := json.Marshal(raw)
	if err != nil {
		return Catalog{}, err
	}
	if err := validate(jb); err != nil {
		return Catalog{}, err
	}
	var c Catalog
	if err := json.Unmarshal(jb, &c); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func validate(jb []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(jb),
	)
	if err != nil {
		return err
	}
	if !result.Valid() {
		var buf bytes.Buffer
		for _, e := range result.Errors() {
			buf.WriteString(e.String())
			buf.WriteByte(';')
		}
		return fmt.Errorf("catalog invalid: %s", buf.String())
	}
	return nil
}

// Gym returns v when it is a listed gym, the first gym otherwise.
func (c Catalog) Gym(v string) string { return pick(c.Gyms, v) }

// Workout returns v when it is a listed workout, the first workout otherwise.
func (c Catalog) Workout(v string) string { return pick(c.Workouts, v) }

func pick(opts []string, v string) string {
	if slices.Contains(opts, v) {
		return v
	}
	if len(opts) == 0 {
		return v
	}
	return opts[0]
}
