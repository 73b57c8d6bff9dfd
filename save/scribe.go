// Package save implements the world save file: a YAML document with a header
// and one named section per participant. Participants read and write their
// section through a Scribe, which runs in either Saving or Loading mode so a
// single ExposeData method describes both directions.
package save

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mode is the direction a Scribe is running in.
type Mode int

const (
	Saving Mode = iota
	Loading
)

func (m Mode) String() string {
	if m == Loading {
		return "loading"
	}
	return "saving"
}

var (
	// ErrPairMismatch means parallel key/value sequences differ in length.
	ErrPairMismatch = errors.New("save: key and value sequences differ in length")
	// ErrDuplicateKey means a key appears twice in a pair sequence.
	ErrDuplicateKey = errors.New("save: duplicate key")
)

// Participant owns one section of the save document.
type Participant interface {
	SaveKey() string
	ExposeData(s *Scribe) error
}

// Scribe reads or writes the values of a single section.
type Scribe struct {
	mode Mode
	node *yaml.Node
}

func newScribe(mode Mode, node *yaml.Node) *Scribe {
	if node == nil || node.Kind != yaml.MappingNode {
		node = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	return &Scribe{mode: mode, node: node}
}

// Mode reports whether the scribe is saving or loading.
func (s *Scribe) Mode() Mode {
	return s.mode
}

func (s *Scribe) put(label string, value *yaml.Node) {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: label}
	s.node.Content = append(s.node.Content, key, value)
}

func (s *Scribe) find(label string) *yaml.Node {
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		if s.node.Content[i].Value == label {
			return s.node.Content[i+1]
		}
	}
	return nil
}

// Look writes *value under label when saving, and reads it back when loading.
// A label missing from the document leaves *value untouched.
func Look[T any](s *Scribe, label string, value *T) error {
	switch s.mode {
	case Saving:
		var node yaml.Node
		if err := node.Encode(*value); err != nil {
			return fmt.Errorf("encode %s: %w", label, err)
		}
		s.put(label, &node)
		return nil
	default:
		node := s.find(label)
		if node == nil {
			return nil
		}
		if err := node.Decode(value); err != nil {
			return fmt.Errorf("decode %s: %w", label, err)
		}
		return nil
	}
}

type pairs[K comparable, V any] struct {
	Keys   []K `yaml:"keys,flow"`
	Values []V `yaml:"values"`
}

// LookPairs persists a mapping as two parallel sequences, so neither the map
// type nor its key type has to be natively serialisable. When loading, a
// missing label yields empty (non-nil) slices; mismatched lengths and
// duplicate keys are rejected.
func LookPairs[K comparable, V any](s *Scribe, label string, keys *[]K, values *[]V) error {
	if s.mode == Saving {
		if len(*keys) != len(*values) {
			return fmt.Errorf("%w: %s has %d keys, %d values", ErrPairMismatch, label, len(*keys), len(*values))
		}
		p := pairs[K, V]{Keys: *keys, Values: *values}
		return Look(s, label, &p)
	}

	var p pairs[K, V]
	if err := Look(s, label, &p); err != nil {
		return err
	}
	if len(p.Keys) != len(p.Values) {
		return fmt.Errorf("%w: %s has %d keys, %d values", ErrPairMismatch, label, len(p.Keys), len(p.Values))
	}

	seen := make(map[K]struct{}, len(p.Keys))
	for _, k := range p.Keys {
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: %s contains %v twice", ErrDuplicateKey, label, k)
		}
		seen[k] = struct{}{}
	}

	if p.Keys == nil {
		p.Keys = []K{}
	}
	if p.Values == nil {
		p.Values = []V{}
	}
	*keys = p.Keys
	*values = p.Values
	return nil
}
