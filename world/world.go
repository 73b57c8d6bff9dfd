// Package world holds the state of one save: the bills that exist, global
// resources, and the participants that persist alongside them.
package world

import (
	"iter"
	"reflect"
	"slices"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/filter"
	"github.com/plus3/workbench/identity"
	"github.com/plus3/workbench/save"
)

// World owns every bill of a running game and assigns their load IDs.
// It is driven from a single goroutine by a Scheduler.
type World struct {
	id      uuid.UUID
	tick    int64
	catalog *bill.Catalog
	ids     identity.Extractor

	bills      *intmap.Map[int, bill.Bill]
	nextLoadID int

	resources    map[reflect.Type]any
	participants []save.Participant
	onDestroy    []func(bill.Bill)
}

// Option configures a World before it is returned by New or Load.
type Option func(*World)

// WithSetup runs fn once the world exists. Load runs it before the save is
// read, so participants registered here receive their sections.
func WithSetup(fn func(*World)) Option {
	return fn
}

// New creates an empty world for a new game.
func New(catalog *bill.Catalog, opts ...Option) (*World, error) {
	w, err := newWorld(catalog)
	if err != nil {
		return nil, err
	}
	w.id = uuid.New()
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func newWorld(catalog *bill.Catalog) (*World, error) {
	ids, err := identity.ForBills()
	if err != nil {
		return nil, err
	}
	return &World{
		catalog:    catalog,
		ids:        ids,
		bills:      intmap.New[int, bill.Bill](64),
		nextLoadID: 1,
		resources:  make(map[reflect.Type]any),
	}, nil
}

// ID identifies the game across saves.
func (w *World) ID() uuid.UUID { return w.id }

// Tick is the number of completed scheduler frames.
func (w *World) Tick() int64 { return w.tick }

// Catalog returns the recipe definitions the world was created with.
func (w *World) Catalog() *bill.Catalog { return w.catalog }

// Identity returns the extractor the world keys its bills by.
func (w *World) Identity() identity.Extractor { return w.ids }

// Spawn creates a bill for recipe with a fresh load ID.
func (w *World) Spawn(recipe *bill.RecipeDef) *bill.Production {
	p := bill.NewProduction(w.allocLoadID(), recipe)
	w.bills.Put(w.ids.IdentityOf(p), p)
	return p
}

// SpawnLegacy creates a bill in the old format that carries its own output
// filter.
func (w *World) SpawnLegacy(recipe *bill.RecipeDef, f *filter.ThingFilter) *bill.LegacyProduction {
	p := bill.NewLegacyProduction(w.allocLoadID(), recipe, f)
	w.bills.Put(w.ids.IdentityOf(p), p)
	return p
}

func (w *World) allocLoadID() int {
	id := w.nextLoadID
	w.nextLoadID++
	return id
}

// Bill returns the live bill with the given load ID.
func (w *World) Bill(loadID int) (bill.Bill, bool) {
	return w.bills.Get(loadID)
}

// Alive reports whether a bill with the given load ID exists.
func (w *World) Alive(loadID int) bool {
	return w.bills.Has(loadID)
}

// Len returns the number of live bills.
func (w *World) Len() int {
	return w.bills.Len()
}

// Bills iterates live bills in load ID order.
func (w *World) Bills() iter.Seq2[int, bill.Bill] {
	return func(yield func(int, bill.Bill) bool) {
		for _, id := range w.loadIDs() {
			b, ok := w.bills.Get(id)
			if !ok {
				continue
			}
			if !yield(id, b) {
				return
			}
		}
	}
}

func (w *World) loadIDs() []int {
	ids := make([]int, 0, w.bills.Len())
	w.bills.ForEach(func(id int, _ bill.Bill) bool {
		ids = append(ids, id)
		return true
	})
	slices.Sort(ids)
	return ids
}

// OnDestroy registers fn to run for every bill just before it is removed.
func (w *World) OnDestroy(fn func(bill.Bill)) {
	w.onDestroy = append(w.onDestroy, fn)
}

// Destroy removes b, running the destroy hooks first. It reports false if b
// was not alive.
func (w *World) Destroy(b bill.Bill) bool {
	id := w.ids.IdentityOf(b)
	if !w.bills.Has(id) {
		return false
	}
	for _, fn := range w.onDestroy {
		fn(b)
	}
	w.bills.Del(id)
	return true
}

// AddParticipant registers p to be written by Save and read by Load.
func (w *World) AddParticipant(p save.Participant) {
	w.participants = append(w.participants, p)
}
