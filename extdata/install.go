package extdata

import "github.com/plus3/workbench/world"

// Install creates a store keyed by the world's bill identity, registers it to
// be saved with the world, drops records when their bill is destroyed and
// exposes the store as a world resource.
func Install(w *world.World, opts ...Option) *Store {
	s := NewStore(w.Identity(), opts...)
	w.AddParticipant(s)
	w.OnDestroy(s.Delete)
	world.AddResource(w, s)
	return s
}

// SweepSystem drops records of bills that no longer exist. Destroy hooks
// normally remove them; the sweep catches bills removed any other way.
type SweepSystem struct {
	Store world.Resource[Store]
	// Every is the sweep period in ticks; zero sweeps every frame.
	Every int64

	Swept int
}

func (s *SweepSystem) Execute(frame *world.UpdateFrame) {
	if s.Every > 0 && frame.Tick%s.Every != 0 {
		return
	}
	store := s.Store.Get()
	if store == nil {
		return
	}
	s.Swept += store.Sweep(frame.World.Alive)
}
