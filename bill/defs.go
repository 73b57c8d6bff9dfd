// Package bill models the host's production tasks: the thing and recipe
// definitions a bill produces from, and the bills themselves. Bills are owned
// by the world and their types are closed; extra per-bill state lives in the
// extdata side table instead.
package bill

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ThingDef describes a kind of item.
type ThingDef struct {
	DefName         string
	Label           string
	BaseMarketValue float64
	// CountAsResource marks stackable raw resources (steel, cloth, meals).
	CountAsResource bool
	HasQuality      bool
	UseHitPoints    bool
}

// Product is one declared output of a recipe.
type Product struct {
	Thing *ThingDef
	Count int
}

// RecipeDef describes what a bill makes. Products are ordered; the first one
// is the primary output.
type RecipeDef struct {
	DefName  string
	Label    string
	Products []Product
}

// PrimaryOutput returns the first declared product, or nil.
func (r *RecipeDef) PrimaryOutput() *ThingDef {
	if r == nil || len(r.Products) == 0 {
		return nil
	}
	return r.Products[0].Thing
}

// ErrUnknownRecipe is returned when a recipe name is not in the catalog.
var ErrUnknownRecipe = errors.New("bill: unknown recipe")

// Catalog indexes recipe definitions by DefName.
type Catalog struct {
	recipes map[string]*RecipeDef
}

// NewCatalog builds a catalog from the given recipes.
func NewCatalog(recipes ...*RecipeDef) *Catalog {
	c := &Catalog{recipes: make(map[string]*RecipeDef, len(recipes))}
	for _, r := range recipes {
		c.Register(r)
	}
	return c
}

// Register adds or replaces a recipe.
func (c *Catalog) Register(r *RecipeDef) {
	c.recipes[r.DefName] = r
}

// Recipe looks up a recipe by DefName.
func (c *Catalog) Recipe(defName string) (*RecipeDef, error) {
	r, ok := c.recipes[defName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, defName)
	}
	return r, nil
}

// Names returns the registered recipe names, sorted.
func (c *Catalog) Names() []string {
	names := slices.Collect(maps.Keys(c.recipes))
	slices.Sort(names)
	return names
}
