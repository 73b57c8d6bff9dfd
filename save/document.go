package save

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// FormatVersion is written into every document header.
const FormatVersion = 1

var (
	// ErrUnsupportedFormat is returned for documents written by a newer
	// version, or without a header.
	ErrUnsupportedFormat = errors.New("save: unsupported document format")
	// ErrDuplicateSection means two participants share a SaveKey.
	ErrDuplicateSection = errors.New("save: duplicate section")
)

// Header identifies the world a document belongs to.
type Header struct {
	Format  int       `yaml:"format"`
	World   string    `yaml:"world"`
	Tick    int64     `yaml:"tick"`
	SavedAt time.Time `yaml:"savedAt"`
}

type document struct {
	Header   Header    `yaml:"header"`
	Sections yaml.Node `yaml:"sections"`
}

// Encode writes a document with one section per participant, in the order
// given.
func Encode(w io.Writer, h Header, participants ...Participant) error {
	h.Format = FormatVersion
	doc := document{
		Header:   h,
		Sections: yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"},
	}

	seen := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		key := p.SaveKey()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateSection, key)
		}
		seen[key] = struct{}{}

		scribe := newScribe(Saving, nil)
		if err := p.ExposeData(scribe); err != nil {
			return fmt.Errorf("save section %s: %w", key, err)
		}
		doc.Sections.Content = append(doc.Sections.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			scribe.node,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return enc.Close()
}

// Decode reads a document and hands each participant its section. A
// participant whose section is absent still runs, against an empty section,
// so it can reset itself to an empty state.
func Decode(r io.Reader, participants ...Participant) (Header, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Header{}, fmt.Errorf("decode document: %w", err)
	}
	if doc.Header.Format < 1 || doc.Header.Format > FormatVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedFormat, doc.Header.Format)
	}

	for _, p := range participants {
		key := p.SaveKey()
		scribe := newScribe(Loading, section(&doc.Sections, key))
		if err := p.ExposeData(scribe); err != nil {
			return Header{}, fmt.Errorf("load section %s: %w", key, err)
		}
	}
	return doc.Header, nil
}

func section(sections *yaml.Node, key string) *yaml.Node {
	if sections.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(sections.Content); i += 2 {
		if sections.Content[i].Value == key {
			return sections.Content[i+1]
		}
	}
	return nil
}
