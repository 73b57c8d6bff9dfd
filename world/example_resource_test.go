package world_test

import (
	"context"
	"fmt"

	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/world"
)

type GameClock struct {
	Hour int
	Day  int
}

type WorkSettings struct {
	MaxBills int
}

// ExampleNewResource demonstrates creating and accessing world resources.
// Resources are values not tied to any bill, such as clocks or settings.
func ExampleNewResource() {
	w, _ := world.New(bill.NewCatalog())

	// Create resource with initializer
	settings := world.NewResource(w, WorkSettings{MaxBills: 15})
	fmt.Printf("Max bills: %d\n", settings.Get().MaxBills)

	settings.Get().MaxBills = 20

	// A second accessor sees the same value
	same := world.NewResource[WorkSettings](w)
	fmt.Printf("Same settings: %d\n", same.Get().MaxBills)

	// Output:
	// Max bills: 15
	// Same settings: 20
}

// ExampleResource_inSystem shows Resource fields being bound when a system is
// registered.
func ExampleResource_inSystem() {
	w, _ := world.New(bill.NewCatalog())
	world.AddResource(w, &GameClock{Hour: 23, Day: 1})

	scheduler := world.NewScheduler(w)
	scheduler.Register(&clockSystem{})

	for range 3 {
		scheduler.Once(context.Background(), 1)
	}

	clock, _ := world.ReadResource[GameClock](w)
	fmt.Printf("Day %d, %02d:00\n", clock.Day, clock.Hour)

	// Output:
	// Day 2, 02:00
}

type clockSystem struct {
	Clock world.Resource[GameClock]
}

func (s *clockSystem) Execute(frame *world.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Hour++
	if clock.Hour == 24 {
		clock.Hour = 0
		clock.Day++
	}
}
