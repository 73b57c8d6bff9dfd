package world

import "context"

// System is a behaviour run once per frame by the Scheduler. Systems may
// hold Resource fields, which are bound on registration, and any state that
// should persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one scheduler frame.
type UpdateFrame struct {
	DeltaTime float64
	// Tick counts frames completed before this one.
	Tick     int64
	Commands *Commands
	World    *World

	ctx context.Context
}

func newUpdateFrame(ctx context.Context, dt float64, w *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      w.tick,
		Commands:  newCommands(),
		World:     w,
		ctx:       ctx,
	}
}

// Context is cancelled when the scheduler stops.
func (f *UpdateFrame) Context() context.Context {
	return f.ctx
}
