// Package fields defines the catalog of observation fields the dashboard
// renders: their order, pairing for shared-axis histograms, climatology
// mapping, and which fields can never be negative.
package fields

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field describes one observation column.
type Field struct {
	// Name is the full column name including the unit suffix,
	// e.g. "Max Temp F".
	Name string `yaml:"name" json:"name"`
	// PairedWith names the field sharing this field's histogram axes.
	// Pairing is an explicit table here, not a column-position convention.
	PairedWith string `yaml:"paired_with" json:"paired_with"`
	// Climatology optionally names the column holding this field's
	// long-term reference value.
	Climatology string `yaml:"climatology,omitempty" json:"climatology,omitempty"`
	// PositiveOnly marks fields where negative readings are sensor
	// sentinels and must be treated as undefined.
	PositiveOnly bool `yaml:"positive_only,omitempty" json:"positive_only,omitempty"`
}

// Catalog is an ordered set of fields.
type Catalog struct {
	Fields []Field `yaml:"fields"`

	byName map[string]*Field
}

// Default returns the built-in ASOS daily-observation catalog.
func Default() *Catalog {
	c := &Catalog{Fields: []Field{
		{Name: "Min Temp F", PairedWith: "Max Temp F", Climatology: "Climo Min Temp F"},
		{Name: "Max Temp F", PairedWith: "Min Temp F", Climatology: "Climo Max Temp F"},
		{Name: "Precip In", PairedWith: "Snow In", Climatology: "Climo Precip In", PositiveOnly: true},
		{Name: "Snow In", PairedWith: "Precip In", PositiveOnly: true},
		{Name: "Min Dewpoint F", PairedWith: "Max Dewpoint F"},
		{Name: "Max Dewpoint F", PairedWith: "Min Dewpoint F"},
		{Name: "Min Humidity %", PairedWith: "Max Humidity %", PositiveOnly: true},
		{Name: "Max Humidity %", PairedWith: "Min Humidity %", PositiveOnly: true},
		{Name: "Min Feel F", PairedWith: "Max Feel F"},
		{Name: "Max Feel F", PairedWith: "Min Feel F"},
		{Name: "Max Wind Kts", PairedWith: "Max Gust Kts"},
		{Name: "Max Gust Kts", PairedWith: "Max Wind Kts"},
	}}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the catalog for duplicate names and broken pairings, and
// builds the lookup index.
func (c *Catalog) Validate() error {
	if len(c.Fields) == 0 {
		return fmt.Errorf("catalog has no fields")
	}
	c.byName = make(map[string]*Field, len(c.Fields))
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Name == "" {
			return fmt.Errorf("catalog field %d has no name", i)
		}
		if _, ok := c.byName[f.Name]; ok {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		c.byName[f.Name] = f
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.PairedWith == "" {
			return fmt.Errorf("field %q has no pair", f.Name)
		}
		if f.PairedWith == f.Name {
			return fmt.Errorf("field %q is paired with itself", f.Name)
		}
		if _, ok := c.byName[f.PairedWith]; !ok {
			return fmt.Errorf("field %q paired with unknown field %q", f.Name, f.PairedWith)
		}
	}
	return nil
}

// Has reports whether the catalog contains the named field.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// PairOf returns the field sharing axes with the named field.
func (c *Catalog) PairOf(name string) (string, bool) {
	f, ok := c.byName[name]
	if !ok {
		return "", false
	}
	return f.PairedWith, true
}

// ClimatologyOf returns the climatology column for the named field, if the
// catalog maps one.
func (c *Catalog) ClimatologyOf(name string) (string, bool) {
	f, ok := c.byName[name]
	if !ok || f.Climatology == "" {
		return "", false
	}
	return f.Climatology, true
}

// PositiveOnly reports whether negative readings of the named field are
// sentinels.
func (c *Catalog) PositiveOnly(name string) bool {
	f, ok := c.byName[name]
	return ok && f.PositiveOnly
}

// Names returns the observation field names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = f.Name
	}
	return names
}

// StorageNames returns all column names the catalog expects in storage:
// the observation fields plus their climatology columns.
func (c *Catalog) StorageNames() []string {
	names := c.Names()
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, f := range c.Fields {
		if f.Climatology != "" && !seen[f.Climatology] {
			seen[f.Climatology] = true
			names = append(names, f.Climatology)
		}
	}
	return names
}
