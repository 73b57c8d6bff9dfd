package extdata

import (
	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/filter"
)

// Strategy is how a missing record gets built.
type Strategy int

const (
	// StrategyDefault builds an empty record.
	StrategyDefault Strategy = iota
	// StrategyDefaultWithFilter builds a record filtered to the recipe's
	// primary output.
	StrategyDefaultWithFilter
	// StrategyMigrate copies the filter a legacy bill carries.
	StrategyMigrate
)

func (s Strategy) String() string {
	switch s {
	case StrategyDefaultWithFilter:
		return "filtered"
	case StrategyMigrate:
		return "migrated"
	default:
		return "default"
	}
}

// Construction is the decision for one bill, separate from building the
// record so it can be inspected without side effects.
type Construction struct {
	Strategy Strategy
	// Legacy is set for StrategyMigrate.
	Legacy *filter.ThingFilter
	// Recipe is set for StrategyDefaultWithFilter.
	Recipe *bill.RecipeDef
}

// ChooseConstruction decides how to build the record for b. Legacy bills are
// always migrated, even when their recipe would not be filterable.
func ChooseConstruction(b bill.Bill) Construction {
	if carrier, ok := b.(bill.FilterCarrier); ok {
		return Construction{Strategy: StrategyMigrate, Legacy: carrier.OutputFilter()}
	}
	if recipe := b.Recipe(); IsFilterable(recipe) {
		return Construction{Strategy: StrategyDefaultWithFilter, Recipe: recipe}
	}
	return Construction{Strategy: StrategyDefault}
}

// Build creates the record the decision describes.
func (c Construction) Build() *Record {
	switch c.Strategy {
	case StrategyMigrate:
		return MigrateRecord(c.Legacy)
	case StrategyDefaultWithFilter:
		r := NewRecord()
		r.SetDefaultFilter(c.Recipe)
		return r
	default:
		return NewRecord()
	}
}

// IsFilterable reports whether a recipe's primary output is an individually
// distinguishable item worth filtering by quality or hit points. Only the
// first declared product is considered. Worthless outputs and stackable
// resources are never filterable.
func IsFilterable(recipe *bill.RecipeDef) bool {
	output := recipe.PrimaryOutput()
	if output == nil {
		return false
	}
	if output.BaseMarketValue <= 0 {
		return false
	}
	return !output.CountAsResource
}

// IsBillFilterable is IsFilterable for the bill's recipe.
func IsBillFilterable(b bill.Bill) bool {
	return IsFilterable(b.Recipe())
}
