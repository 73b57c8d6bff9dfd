package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/extdata"
	"github.com/plus3/workbench/filter"
	"github.com/plus3/workbench/internal/config"
	"github.com/plus3/workbench/internal/logging"
	"github.com/plus3/workbench/slot"
	"github.com/plus3/workbench/world"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("simulation failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *logging.Logger) error {
	slots, err := slot.Open(ctx, cfg.Slot)
	if err != nil {
		return fmt.Errorf("open slot store: %w", err)
	}
	if c, ok := slots.(io.Closer); ok {
		defer c.Close()
	}
	log.Info("slot store ready", "driver", slots.Driver(), "dsn", cfg.Slot.DSN)

	reg := prometheus.NewRegistry()
	metrics := extdata.NewMetrics(reg)
	catalog := defaultCatalog()
	rng := rand.New(rand.NewSource(cfg.Seed))

	w, err := world.New(catalog, world.WithSetup(func(w *world.World) {
		extdata.Install(w, extdata.WithDiagnostics(log.With("phase", "run")), extdata.WithMetrics(metrics))
	}))
	if err != nil {
		return err
	}
	log = log.With("world", w.ID().String())

	recipes := recipesOf(catalog)
	legacy := populate(w, rng, recipes, cfg.Bills, cfg.LegacyShare)
	log.Info("world populated", "bills", w.Len(), "legacy", legacy)

	production := &productionSystem{rng: rng, perTick: 4}
	churn := &churnSystem{rng: rng, recipes: recipes, chance: 0.2}
	sweep := &extdata.SweepSystem{Every: cfg.SweepEvery}
	autosave := &world.AutosaveSystem{Slot: slots, Name: cfg.SaveName + "-auto", Every: cfg.AutosaveEvery}

	scheduler := world.NewScheduler(w)
	scheduler.Register(production)
	scheduler.Register(churn)
	scheduler.Register(sweep)
	scheduler.Register(autosave)

	report := &Report{
		Duration: cfg.Duration,
		Tick:     cfg.Tick,
		Bills:    cfg.Bills,
		Legacy:   legacy,
		Driver:   string(slots.Driver()),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", "duration", cfg.Duration)
	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	start := time.Now()
	scheduler.Run(runCtx, cfg.Tick)
	cancel()
	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	if autosave.LastErr != nil {
		log.Warn("autosave failed", "error", autosave.LastErr)
	}

	store, _ := world.ReadResource[extdata.Store](w)
	if err := w.Save(ctx, slots, cfg.SaveName); err != nil {
		return err
	}
	log.Info("world saved", "slot", cfg.SaveName, "records", store.Len())

	loaded, err := world.Load(ctx, slots, cfg.SaveName, catalog, world.WithSetup(func(w *world.World) {
		extdata.Install(w, extdata.WithDiagnostics(log.With("phase", "reload")))
	}))
	if err != nil {
		return err
	}
	reloaded, _ := world.ReadResource[extdata.Store](loaded)
	mismatches := compareStores(store, reloaded)
	if mismatches > 0 {
		log.Error("reloaded records differ", "count", mismatches)
	}

	report.Ticks = w.Tick()
	report.LiveBills = w.Len()
	report.Records = store.Len()
	report.Touched = production.Touched
	report.Destroyed = churn.Destroyed
	report.Spawned = churn.Spawned
	report.Swept = sweep.Swept
	report.Autosaves = autosave.Saves
	report.Mismatches = mismatches
	report.Scheduler = scheduler.GetStats()
	if report.Metrics, err = gatherMetrics(reg); err != nil {
		return err
	}
	if report.Saves, err = slots.List(ctx); err != nil {
		return err
	}

	fmt.Println("\n--- Workbench Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	if mismatches > 0 {
		return errors.New("save round trip lost records")
	}
	return nil
}

func recipesOf(catalog *bill.Catalog) []*bill.RecipeDef {
	names := catalog.Names()
	recipes := make([]*bill.RecipeDef, 0, len(names))
	for _, name := range names {
		r, _ := catalog.Recipe(name)
		recipes = append(recipes, r)
	}
	return recipes
}

// populate spawns the starting bills. A share of them use the old format with
// an embedded filter, as a save from an earlier version would contain.
func populate(w *world.World, rng *rand.Rand, recipes []*bill.RecipeDef, count int, legacyShare float64) int {
	legacy := 0
	for range count {
		recipe := recipes[rng.Intn(len(recipes))]
		output := recipe.PrimaryOutput()
		if output != nil && rng.Float64() < legacyShare {
			f := filter.ForThing(output.DefName)
			f.HitPoints = filter.FloatRange{Min: 0.5, Max: 1}
			w.SpawnLegacy(recipe, f)
			legacy++
			continue
		}
		w.Spawn(recipe)
	}
	return legacy
}

// compareStores counts keys whose records did not survive the round trip.
func compareStores(want, got *extdata.Store) int {
	wantKeys, gotKeys := want.Keys(), got.Keys()
	mismatches := max(len(wantKeys), len(gotKeys)) - min(len(wantKeys), len(gotKeys))
	for _, key := range wantKeys {
		probe := bill.NewProduction(key, nil)
		a, _ := want.Lookup(probe)
		b, ok := got.Lookup(probe)
		if !ok || !sameRecord(a, b) {
			mismatches++
		}
	}
	return mismatches
}

func sameRecord(a, b *extdata.Record) bool {
	return a.Name == b.Name &&
		a.CountAway == b.CountAway &&
		a.CountEquippedWeapons == b.CountEquippedWeapons &&
		a.CountWornApparel == b.CountWornApparel &&
		a.OutputFilter.Equal(b.OutputFilter)
}
