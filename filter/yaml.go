package filter

import "gopkg.in/yaml.v3"

type wireFilter struct {
	Allowed   []string     `yaml:"allowed,flow"`
	Qualities QualityRange `yaml:"qualities"`
	HitPoints FloatRange   `yaml:"hitPoints"`
}

// MarshalYAML writes the allowed set as a sorted sequence so saves are stable.
func (f *ThingFilter) MarshalYAML() (any, error) {
	return wireFilter{
		Allowed:   f.AllowedDefs(),
		Qualities: f.Qualities,
		HitPoints: f.HitPoints,
	}, nil
}

// UnmarshalYAML restores a filter written by MarshalYAML.
func (f *ThingFilter) UnmarshalYAML(node *yaml.Node) error {
	var wire wireFilter
	if err := node.Decode(&wire); err != nil {
		return err
	}
	f.allowed = make(map[string]struct{}, len(wire.Allowed))
	for _, def := range wire.Allowed {
		f.allowed[def] = struct{}{}
	}
	f.Qualities = wire.Qualities
	f.HitPoints = wire.HitPoints
	return nil
}
