package main

import (
	"math/rand"

	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/extdata"
	"github.com/plus3/workbench/filter"
	"github.com/plus3/workbench/world"
)

// productionSystem opens the configuration of a few random bills each frame,
// the way a player browsing work tables would, and edits their records.
type productionSystem struct {
	Store world.Resource[extdata.Store]

	rng     *rand.Rand
	perTick int
	Touched int64
}

func (s *productionSystem) Execute(frame *world.UpdateFrame) {
	store := s.Store.Get()
	if store == nil {
		return
	}
	for range s.perTick {
		b, ok := randomBill(frame.World, s.rng)
		if !ok {
			return
		}
		record := store.GetOrCreate(b)
		s.Touched++

		switch s.rng.Intn(4) {
		case 0:
			record.CountEquippedWeapons = !record.CountEquippedWeapons
		case 1:
			record.CountAway = !record.CountAway
		case 2:
			if record.HasFilter() {
				record.OutputFilter.Qualities.Min = filter.Quality(s.rng.Intn(int(filter.QualityLegendary) + 1))
			}
		default:
			record.Name = b.Label()
		}
	}
}

// churnSystem retires bills and queues new ones so that destroy hooks keep
// the store in step with the world.
type churnSystem struct {
	rng     *rand.Rand
	recipes []*bill.RecipeDef
	chance  float64

	Destroyed int64
	Spawned   int64
}

func (s *churnSystem) Execute(frame *world.UpdateFrame) {
	if s.rng.Float64() >= s.chance {
		return
	}
	if b, ok := randomBill(frame.World, s.rng); ok {
		frame.Commands.Destroy(b)
		s.Destroyed++
	}
	frame.Commands.Spawn(s.recipes[s.rng.Intn(len(s.recipes))])
	s.Spawned++
}

// randomBill picks a live bill. Load IDs are sparse after churn, so it walks
// the registry instead of guessing IDs.
func randomBill(w *world.World, rng *rand.Rand) (bill.Bill, bool) {
	n := w.Len()
	if n == 0 {
		return nil, false
	}
	target := rng.Intn(n)
	i := 0
	for _, b := range w.Bills() {
		if i == target {
			return b, true
		}
		i++
	}
	return nil, false
}
