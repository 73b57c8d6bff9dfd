package filter

import (
	"maps"
	"slices"
)

// Quality is the crafted quality tier of an item, from worst to best.
type Quality int

const (
	QualityAwful Quality = iota
	QualityPoor
	QualityNormal
	QualityGood
	QualityExcellent
	QualityMasterwork
	QualityLegendary
)

var qualityNames = [...]string{"awful", "poor", "normal", "good", "excellent", "masterwork", "legendary"}

func (q Quality) String() string {
	if q < QualityAwful || q > QualityLegendary {
		return "unknown"
	}
	return qualityNames[q]
}

// QualityRange is an inclusive range of quality tiers.
type QualityRange struct {
	Min Quality `yaml:"min"`
	Max Quality `yaml:"max"`
}

// AllQualities spans every tier.
var AllQualities = QualityRange{Min: QualityAwful, Max: QualityLegendary}

// Includes reports whether q lies inside the range.
func (r QualityRange) Includes(q Quality) bool {
	return q >= r.Min && q <= r.Max
}

// FloatRange is an inclusive range, used for hit point percentages in [0, 1].
type FloatRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// FullHitPoints accepts any amount of damage.
var FullHitPoints = FloatRange{Min: 0, Max: 1}

// Includes reports whether v lies inside the range.
func (r FloatRange) Includes(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ThingFilter decides which produced items count towards a bill.
// The zero value allows nothing.
type ThingFilter struct {
	allowed   map[string]struct{}
	Qualities QualityRange
	HitPoints FloatRange
}

// New returns an empty filter with the full quality and hit point ranges.
func New() *ThingFilter {
	return &ThingFilter{
		allowed:   make(map[string]struct{}),
		Qualities: AllQualities,
		HitPoints: FullHitPoints,
	}
}

// ForThing returns a filter allowing only defName.
func ForThing(defName string) *ThingFilter {
	f := New()
	f.SetAllow(defName, true)
	return f
}

// SetAllow adds or removes a def from the allowed set.
func (f *ThingFilter) SetAllow(defName string, allow bool) {
	if f.allowed == nil {
		f.allowed = make(map[string]struct{})
	}
	if allow {
		f.allowed[defName] = struct{}{}
		return
	}
	delete(f.allowed, defName)
}

// SetDisallowAll clears the allowed set, keeping the ranges.
func (f *ThingFilter) SetDisallowAll() {
	clear(f.allowed)
}

// AllowedDefs returns the allowed def names, sorted.
func (f *ThingFilter) AllowedDefs() []string {
	if f == nil || len(f.allowed) == 0 {
		return nil
	}
	defs := slices.Collect(maps.Keys(f.allowed))
	slices.Sort(defs)
	return defs
}

// AllowsDef reports whether defName is in the allowed set.
func (f *ThingFilter) AllowsDef(defName string) bool {
	if f == nil {
		return false
	}
	_, ok := f.allowed[defName]
	return ok
}

// Allows reports whether an item of the given def, quality and hit point
// percentage passes the filter.
func (f *ThingFilter) Allows(defName string, q Quality, hitPoints float64) bool {
	return f.AllowsDef(defName) && f.Qualities.Includes(q) && f.HitPoints.Includes(hitPoints)
}

// IsEmpty reports whether no def is allowed.
func (f *ThingFilter) IsEmpty() bool {
	return f == nil || len(f.allowed) == 0
}

// Clone returns a deep copy. Cloning nil yields nil.
func (f *ThingFilter) Clone() *ThingFilter {
	if f == nil {
		return nil
	}
	return &ThingFilter{
		allowed:   maps.Clone(f.allowed),
		Qualities: f.Qualities,
		HitPoints: f.HitPoints,
	}
}

// Equal compares allowed defs and ranges.
func (f *ThingFilter) Equal(other *ThingFilter) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Qualities != other.Qualities || f.HitPoints != other.HitPoints {
		return false
	}
	return slices.Equal(f.AllowedDefs(), other.AllowedDefs())
}
