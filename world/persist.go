package world

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/filter"
	"github.com/plus3/workbench/save"
	"github.com/plus3/workbench/slot"
)

const billsKey = "bills"

type billEntry struct {
	LoadID    int                 `yaml:"loadID"`
	Recipe    string              `yaml:"recipe"`
	Suspended bool                `yaml:"suspended,omitempty"`
	Filter    *filter.ThingFilter `yaml:"filter,omitempty"`
}

// billsSection persists the bill registry. It is always the first section,
// so other participants can rely on the bills existing when they load.
type billsSection struct {
	w *World
}

func (s billsSection) SaveKey() string { return billsKey }

func (s billsSection) ExposeData(sc *save.Scribe) error {
	w := s.w

	var entries []billEntry
	if sc.Mode() == save.Saving {
		entries = make([]billEntry, 0, w.bills.Len())
		for id, b := range w.Bills() {
			entries = append(entries, toEntry(id, b))
		}
	}

	if err := save.Look(sc, "nextLoadID", &w.nextLoadID); err != nil {
		return err
	}
	if err := save.Look(sc, "entries", &entries); err != nil {
		return err
	}

	if sc.Mode() == save.Loading {
		w.bills.Clear()
		for _, e := range entries {
			b, err := w.fromEntry(e)
			if err != nil {
				return err
			}
			if w.bills.Has(e.LoadID) {
				return fmt.Errorf("%w: bill %d", save.ErrDuplicateKey, e.LoadID)
			}
			w.bills.Put(e.LoadID, b)
			if e.LoadID >= w.nextLoadID {
				w.nextLoadID = e.LoadID + 1
			}
		}
	}
	return nil
}

func toEntry(id int, b bill.Bill) billEntry {
	e := billEntry{LoadID: id}
	if r := b.Recipe(); r != nil {
		e.Recipe = r.DefName
	}
	switch p := b.(type) {
	case *bill.LegacyProduction:
		e.Suspended = p.Suspended
		e.Filter = p.OutputFilter()
	case *bill.Production:
		e.Suspended = p.Suspended
	}
	return e
}

// fromEntry rebuilds a bill. Entries that still carry a filter come from
// saves made before extended data existed and load as legacy bills.
func (w *World) fromEntry(e billEntry) (bill.Bill, error) {
	recipe, err := w.catalog.Recipe(e.Recipe)
	if err != nil {
		return nil, fmt.Errorf("bill %d: %w", e.LoadID, err)
	}
	if e.Filter != nil {
		p := bill.NewLegacyProduction(e.LoadID, recipe, e.Filter)
		p.Suspended = e.Suspended
		return p, nil
	}
	p := bill.NewProduction(e.LoadID, recipe)
	p.Suspended = e.Suspended
	return p, nil
}

// Save writes the world and every participant to the named slot.
func (w *World) Save(ctx context.Context, store slot.Store, name string) error {
	var buf bytes.Buffer
	header := save.Header{
		World:   w.id.String(),
		Tick:    w.tick,
		SavedAt: time.Now().UTC(),
	}
	if err := save.Encode(&buf, header, w.saveParticipants()...); err != nil {
		return fmt.Errorf("encode world: %w", err)
	}
	if err := store.Write(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("write slot %s: %w", name, err)
	}
	return nil
}

// Load reads a world from the named slot. Options run before the document is
// decoded, so that participants they register are restored too.
func Load(ctx context.Context, store slot.Store, name string, catalog *bill.Catalog, opts ...Option) (*World, error) {
	data, err := store.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", name, err)
	}

	w, err := newWorld(catalog)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(w)
	}

	header, err := save.Decode(bytes.NewReader(data), w.saveParticipants()...)
	if err != nil {
		return nil, fmt.Errorf("decode world %s: %w", name, err)
	}
	if w.id, err = uuid.Parse(header.World); err != nil {
		return nil, fmt.Errorf("decode world %s: world id: %w", name, err)
	}
	w.tick = header.Tick
	return w, nil
}

func (w *World) saveParticipants() []save.Participant {
	ps := make([]save.Participant, 0, len(w.participants)+1)
	ps = append(ps, billsSection{w: w})
	return append(ps, w.participants...)
}
