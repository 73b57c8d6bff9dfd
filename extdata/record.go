package extdata

import (
	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/filter"
)

// Record is the extra state kept for one bill. Callers receive the stored
// pointer and edit it in place; there is no separate copy.
type Record struct {
	// OutputFilter restricts which produced items count towards the bill's
	// target. Nil means no filtering.
	OutputFilter         *filter.ThingFilter `yaml:"outputFilter,omitempty"`
	CountWornApparel     bool                `yaml:"countWornApparel"`
	CountEquippedWeapons bool                `yaml:"countEquippedWeapons"`
	CountAway            bool                `yaml:"countAway"`
	Name                 string              `yaml:"name,omitempty"`
}

// NewRecord returns a record with no filter.
func NewRecord() *Record {
	return &Record{}
}

// MigrateRecord builds a record from the filter a legacy bill carried. The
// filter is copied so the record does not alias the bill's state.
func MigrateRecord(legacy *filter.ThingFilter) *Record {
	return &Record{OutputFilter: legacy.Clone()}
}

// HasFilter reports whether an output filter is set.
func (r *Record) HasFilter() bool {
	return r.OutputFilter != nil
}

// SetDefaultFilter restricts counting to the recipe's primary output, at any
// quality and any hit points.
func (r *Record) SetDefaultFilter(recipe *bill.RecipeDef) {
	output := recipe.PrimaryOutput()
	if output == nil {
		return
	}
	r.OutputFilter = filter.ForThing(output.DefName)
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	clone := *r
	clone.OutputFilter = r.OutputFilter.Clone()
	return &clone
}
