// Package extdata keeps extra per-bill state in a side table owned by the
// world, because bills themselves cannot carry new fields.
//
// Records are keyed by the bill's stable load ID, created lazily the first
// time a bill is looked up, and persisted with the world. Bills from older
// saves that still embed their own output filter are migrated into a record
// on first lookup.
package extdata

import (
	"slices"
	"sync"

	"github.com/kamstrup/intmap"
	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/identity"
	"github.com/plus3/workbench/save"
)

// SaveKey is the save document section the store writes.
const SaveKey = "extendedBillData"

// Store maps bill identities to records. At most one record exists per
// identity. All methods are safe to call from multiple goroutines; each one
// holds the store's lock for its whole duration.
type Store struct {
	mu      sync.Mutex
	records *intmap.Map[int, *Record]
	ids     identity.Extractor
	diag    Diagnostics
	metrics *Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithDiagnostics sets the sink for migration and creation events.
func WithDiagnostics(d Diagnostics) Option {
	return func(s *Store) {
		if d != nil {
			s.diag = d
		}
	}
}

// WithMetrics records store activity in m.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore creates an empty store keyed by ids.
func NewStore(ids identity.Extractor, opts ...Option) *Store {
	s := &Store{
		records: intmap.New[int, *Record](64),
		ids:     ids,
		diag:    NopDiagnostics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetOrCreate returns the record for b, creating it on first use. Repeated
// calls for the same identity return the same *Record until it is deleted.
func (s *Store) GetOrCreate(b bill.Bill) *Record {
	key := s.ids.IdentityOf(b)

	s.mu.Lock()
	if record, ok := s.records.Get(key); ok {
		s.mu.Unlock()
		return record
	}

	c := ChooseConstruction(b)
	record := c.Build()
	s.records.Put(key, record)
	size := s.records.Len()
	s.mu.Unlock()

	s.metrics.observeCreated(c.Strategy, size)
	if c.Strategy == StrategyMigrate {
		s.emit(s.diag.Warn, "Found old bill, migrating to new format", b)
	} else {
		s.emit(s.diag.Info, "Creating new data", b)
	}
	return record
}

// Lookup returns the record for b without creating one.
func (s *Store) Lookup(b bill.Bill) (*Record, bool) {
	key := s.ids.IdentityOf(b)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Get(key)
}

// Delete drops the record of a bill that is being destroyed. Deleting a bill
// without a record is a no-op.
func (s *Store) Delete(b bill.Bill) {
	s.DeleteKey(s.ids.IdentityOf(b))
}

// DeleteKey drops the record stored under key and reports whether one
// existed.
func (s *Store) DeleteKey(key int) bool {
	s.mu.Lock()
	if !s.records.Has(key) {
		s.mu.Unlock()
		return false
	}
	s.records.Del(key)
	size := s.records.Len()
	s.mu.Unlock()

	s.metrics.observeDeleted(1, size)
	return true
}

// Sweep removes every record whose key alive rejects and returns how many
// were removed. It covers bills destroyed without a Delete call.
func (s *Store) Sweep(alive func(key int) bool) int {
	s.mu.Lock()
	var stale []int
	s.records.ForEach(func(key int, _ *Record) bool {
		if !alive(key) {
			stale = append(stale, key)
		}
		return true
	})
	for _, key := range stale {
		s.records.Del(key)
	}
	size := s.records.Len()
	s.mu.Unlock()

	if len(stale) > 0 {
		s.metrics.observeSwept(len(stale), size)
	}
	return len(stale)
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.Len()
}

// Keys returns the identities that have a record, sorted.
func (s *Store) Keys() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedKeys()
}

func (s *Store) sortedKeys() []int {
	keys := make([]int, 0, s.records.Len())
	s.records.ForEach(func(key int, _ *Record) bool {
		keys = append(keys, key)
		return true
	})
	slices.Sort(keys)
	return keys
}

// SaveKey implements save.Participant.
func (s *Store) SaveKey() string {
	return SaveKey
}

// ExposeData writes or restores the whole mapping as parallel key and record
// sequences. Loading replaces the current contents; a save without the
// section leaves the store empty.
func (s *Store) ExposeData(sc *save.Scribe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		keys    []int
		records []*Record
	)
	if sc.Mode() == save.Saving {
		keys = s.sortedKeys()
		records = make([]*Record, len(keys))
		for i, key := range keys {
			records[i], _ = s.records.Get(key)
		}
	}

	if err := save.LookPairs(sc, "store", &keys, &records); err != nil {
		return err
	}

	if sc.Mode() == save.Loading {
		s.records = intmap.New[int, *Record](max(64, len(keys)))
		for i, key := range keys {
			record := records[i]
			if record == nil {
				record = NewRecord()
			}
			s.records.Put(key, record)
		}
		s.metrics.observeSize(s.records.Len())
	}
	return nil
}

// emit forwards to the diagnostics sink. The sink is not essential; a panic
// inside it is swallowed so it can never affect the store.
func (s *Store) emit(fn func(string, ...any), msg string, b bill.Bill) {
	defer func() { _ = recover() }()
	fn(msg, "bill", b.UniqueLoadID())
}
