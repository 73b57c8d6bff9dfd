package bill

import (
	"strconv"

	"github.com/plus3/workbench/filter"
)

// Bill is the public contract of a production task. The stable load ID the
// world assigns is deliberately not part of it.
type Bill interface {
	Recipe() *RecipeDef
	// UniqueLoadID is the human readable identifier used in logs and saves.
	UniqueLoadID() string
	Label() string
}

// FilterCarrier is implemented by bills written before output filters moved
// into the side table; they still carry their own filter.
type FilterCarrier interface {
	Bill
	OutputFilter() *filter.ThingFilter
}

// Production is a standard production bill.
type Production struct {
	loadID int
	recipe *RecipeDef
	// Suspended pauses work on the bill.
	Suspended bool
}

// NewProduction creates a bill. Only the world should call this; it owns the
// load ID sequence.
func NewProduction(loadID int, recipe *RecipeDef) *Production {
	return &Production{loadID: loadID, recipe: recipe}
}

func (p *Production) Recipe() *RecipeDef {
	return p.recipe
}

func (p *Production) UniqueLoadID() string {
	return "Bill_" + strconv.Itoa(p.loadID)
}

func (p *Production) Label() string {
	if p.recipe == nil {
		return ""
	}
	return p.recipe.Label
}

// LegacyProduction is a bill from an older save that embeds its own output
// filter.
type LegacyProduction struct {
	Production
	filter *filter.ThingFilter
}

// NewLegacyProduction creates a legacy bill carrying f.
func NewLegacyProduction(loadID int, recipe *RecipeDef, f *filter.ThingFilter) *LegacyProduction {
	return &LegacyProduction{
		Production: Production{loadID: loadID, recipe: recipe},
		filter:     f,
	}
}

// OutputFilter returns the filter embedded in the bill.
func (p *LegacyProduction) OutputFilter() *filter.ThingFilter {
	return p.filter
}

var _ FilterCarrier = (*LegacyProduction)(nil)
