package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed demo/catalog.yml
var demoCatalog []byte

// DemoSource returns the raw YAML of the embedded demonstration catalog.
// The init wizard writes it out as an editable starter catalog.
func DemoSource() []byte {
	return demoCatalog
}

// Demo returns the embedded demonstration catalog, used when no catalog
// paths are configured.
func Demo() (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(demoCatalog, &f); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	f.normalize()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return New(f.Rows, f.Content), nil
}
