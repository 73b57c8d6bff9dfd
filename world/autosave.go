package world

import "github.com/plus3/workbench/slot"

// AutosaveSystem saves the world to Slot every Every ticks. The save runs as
// a deferred command, after the frame's other changes are applied.
type AutosaveSystem struct {
	Slot  slot.Store
	Name  string
	Every int64

	Saves   int
	LastErr error
}

func (s *AutosaveSystem) Execute(frame *UpdateFrame) {
	if s.Every <= 0 || frame.Tick == 0 || frame.Tick%s.Every != 0 {
		return
	}
	w := frame.World
	ctx := frame.Context()
	frame.Commands.Defer(func() {
		if err := w.Save(ctx, s.Slot, s.Name); err != nil {
			s.LastErr = err
			return
		}
		s.Saves++
	})
}
