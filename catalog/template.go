package catalog

import (
	"fmt"

	"github.com/pkg/errors"
)

// Variant selects the visual stand-in a frontend draws for a template.
type Variant uint8

const (
	VariantBase Variant = iota
	VariantTower
	VariantVillage
	VariantBarracks
)

var variantNames = [...]string{
	VariantBase:     "base",
	VariantTower:    "tower",
	VariantVillage:  "village",
	VariantBarracks: "barracks",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// ParseVariant maps a variant name to its value. The empty name is VariantBase.
func ParseVariant(s string) (Variant, error) {
	if s == "" {
		return VariantBase, nil
	}
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidTemplate, "unknown variant %q", s)
}

// Capability is a set of optional behaviours.
type Capability uint8

const (
	// CapDeletable lets the player remove placed instances for a refund.
	CapDeletable Capability = 1 << iota
)

// Template describes a kind of building the player can place.
type Template struct {
	ID                       string
	Name                     string
	Variant                  Variant
	Width                    int
	Height                   int
	BuildingRadius           int
	ResourceCollectionRadius int
	ResourceCost             int
	Capabilities             Capability
}

// Deletable reports whether placed instances may be removed.
func (t *Template) Deletable() bool {
	return t.Capabilities&CapDeletable != 0
}

// Validate rejects templates the grid cannot place.
func (t *Template) Validate() error {
	switch {
	case t.ID == "":
		return errors.Wrap(ErrInvalidTemplate, "empty id")
	case t.Width <= 0 || t.Height <= 0:
		return errors.Wrapf(ErrInvalidTemplate, "%s: dimensions %dx%d", t.ID, t.Width, t.Height)
	case t.BuildingRadius < 0 || t.ResourceCollectionRadius < 0:
		return errors.Wrapf(ErrInvalidTemplate, "%s: negative radius", t.ID)
	case t.ResourceCost < 0:
		return errors.Wrapf(ErrInvalidTemplate, "%s: negative cost", t.ID)
	}
	return nil
}

func (t *Template) String() string {
	return fmt.Sprintf("%s (%s %dx%d, cost %d)", t.Name, t.Variant, t.Width, t.Height, t.ResourceCost)
}
