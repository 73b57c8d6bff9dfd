package world

import (
	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/filter"
)

// Commands buffers structural changes made by systems and applies them at the
// end of the frame, so the bill registry never changes under a running system.
type Commands struct {
	spawns   []spawnCommand
	destroys []bill.Bill
	defers   []func()
}

type spawnCommand struct {
	recipe *bill.RecipeDef
	legacy *filter.ThingFilter
	then   func(bill.Bill)
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues a new bill for recipe. then, if given, receives the bill once
// it exists.
func (c *Commands) Spawn(recipe *bill.RecipeDef, then ...func(bill.Bill)) {
	c.spawns = append(c.spawns, spawnCommand{recipe: recipe, then: first(then)})
}

// SpawnLegacy queues a new old-format bill carrying f.
func (c *Commands) SpawnLegacy(recipe *bill.RecipeDef, f *filter.ThingFilter, then ...func(bill.Bill)) {
	c.spawns = append(c.spawns, spawnCommand{recipe: recipe, legacy: f, then: first(then)})
}

func first(fns []func(bill.Bill)) func(bill.Bill) {
	if len(fns) == 0 {
		return nil
	}
	return fns[0]
}

// Destroy queues removal of b.
func (c *Commands) Destroy(b bill.Bill) {
	c.destroys = append(c.destroys, b)
}

// Defer queues fn to run after the other commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush applies the buffered commands to w and resets the buffer. Destroys
// run first, then spawns, then deferred functions.
func (c *Commands) Flush(w *World) {
	for _, b := range c.destroys {
		w.Destroy(b)
	}

	for _, cmd := range c.spawns {
		var b bill.Bill
		if cmd.legacy != nil {
			b = w.SpawnLegacy(cmd.recipe, cmd.legacy)
		} else {
			b = w.Spawn(cmd.recipe)
		}
		if cmd.then != nil {
			cmd.then(b)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.defers = c.defers[:0]
}
