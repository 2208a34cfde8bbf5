// Package catalog holds the building templates offered to the player, in the
// order the UI lists them.
package catalog

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"github.com/plus3/buildgrid/schemas"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTemplate is returned for templates that fail validation.
var ErrInvalidTemplate = errors.New("catalog: invalid template")

//go:embed catalog.schema.json
var schemaSource string

var schema = schemas.MustCompile("catalog.schema.json", schemaSource)

// Catalog is an ordered list of templates with lookup by ID.
type Catalog struct {
	Templates []*Template
	byID      map[string]*Template
}

// New validates templates and builds a catalog.
func New(templates ...*Template) (*Catalog, error) {
	c := &Catalog{
		Templates: make([]*Template, 0, len(templates)),
		byID:      make(map[string]*Template, len(templates)),
	}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, errors.Wrapf(ErrInvalidTemplate, "duplicate id %q", t.ID)
		}
		c.Templates = append(c.Templates, t)
		c.byID[t.ID] = t
	}
	return c, nil
}

// ByID returns the template with the given id.
func (c *Catalog) ByID(id string) (*Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// At returns the i-th template or nil when out of range.
func (c *Catalog) At(i int) *Template {
	if i < 0 || i >= len(c.Templates) {
		return nil
	}
	return c.Templates[i]
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.Templates)
}

type document struct {
	Templates []templateDoc `yaml:"templates"`
}

type templateDoc struct {
	ID                       string `yaml:"id"`
	Name                     string `yaml:"name"`
	Variant                  string `yaml:"variant"`
	Width                    int    `yaml:"width"`
	Height                   int    `yaml:"height"`
	BuildingRadius           int    `yaml:"building_radius"`
	ResourceCollectionRadius int    `yaml:"resource_collection_radius"`
	ResourceCost             int    `yaml:"resource_cost"`
	Deletable                bool   `yaml:"deletable"`
}

// Load reads a catalog document from path.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

// Parse validates and decodes a catalog document.
func Parse(raw []byte) (*Catalog, error) {
	if err := schemas.Validate(schema, raw); err != nil {
		return nil, errors.Wrap(ErrInvalidTemplate, err.Error())
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "catalog")
	}

	templates := make([]*Template, 0, len(doc.Templates))
	for _, d := range doc.Templates {
		variant, err := ParseVariant(d.Variant)
		if err != nil {
			return nil, err
		}
		t := &Template{
			ID:                       d.ID,
			Name:                     d.Name,
			Variant:                  variant,
			Width:                    d.Width,
			Height:                   d.Height,
			BuildingRadius:           d.BuildingRadius,
			ResourceCollectionRadius: d.ResourceCollectionRadius,
			ResourceCost:             d.ResourceCost,
		}
		if d.Deletable {
			t.Capabilities |= CapDeletable
		}
		templates = append(templates, t)
	}
	return New(templates...)
}
