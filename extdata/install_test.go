package extdata_test

import (
	"testing"

	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/extdata"
	"github.com/plus3/workbench/filter"
	"github.com/plus3/workbench/slot"
	"github.com/plus3/workbench/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog() *bill.Catalog {
	return bill.NewCatalog(makeKnife, smeltSteel, burnTrash, cleanFloor)
}

func TestInstall(t *testing.T) {
	t.Run("destroy hook deletes the record", func(t *testing.T) {
		var store *extdata.Store
		w, err := world.New(newCatalog(), world.WithSetup(func(w *world.World) {
			store = extdata.Install(w)
		}))
		require.NoError(t, err)

		b := w.Spawn(makeKnife)
		store.GetOrCreate(b)
		require.Equal(t, 1, store.Len())

		w.Destroy(b)
		assert.Equal(t, 0, store.Len())

		res, ok := world.ReadResource[extdata.Store](w)
		require.True(t, ok)
		assert.Same(t, store, res)
	})

	t.Run("records survive save and load", func(t *testing.T) {
		ctx := t.Context()
		saves := slot.NewMemory()
		diag := &recordingDiagnostics{}

		w, err := world.New(newCatalog(), world.WithSetup(func(w *world.World) {
			extdata.Install(w, extdata.WithDiagnostics(diag))
		}))
		require.NoError(t, err)
		store, _ := world.ReadResource[extdata.Store](w)

		knifeBill := w.Spawn(makeKnife)
		record := store.GetOrCreate(knifeBill)
		record.Name = "good knives"
		record.OutputFilter.Qualities.Min = filter.QualityGood
		record.CountEquippedWeapons = true

		legacy := w.SpawnLegacy(makeKnife, filter.ForThing("MeleeWeapon_Knife"))
		w.Spawn(smeltSteel)

		require.NoError(t, w.Save(ctx, saves, "colony"))

		reloadDiag := &recordingDiagnostics{}
		loaded, err := world.Load(ctx, saves, "colony", newCatalog(), world.WithSetup(func(w *world.World) {
			extdata.Install(w, extdata.WithDiagnostics(reloadDiag))
		}))
		require.NoError(t, err)
		loadedStore, _ := world.ReadResource[extdata.Store](loaded)

		assert.Equal(t, []int{1}, loadedStore.Keys())
		b, _ := loaded.Bill(1)
		got := loadedStore.GetOrCreate(b)
		assert.Equal(t, "good knives", got.Name)
		assert.True(t, got.CountEquippedWeapons)
		assert.True(t, record.OutputFilter.Equal(got.OutputFilter))
		assert.Empty(t, reloadDiag.entries)

		legacyBill, ok := loaded.Bill(2)
		require.True(t, ok)
		migrated := loadedStore.GetOrCreate(legacyBill)
		assert.True(t, legacy.OutputFilter().Equal(migrated.OutputFilter))
		assert.Equal(t, 1, reloadDiag.count("warn"))
		assert.Equal(t, 1, diag.count("info"))
	})
}

func TestSweepSystem(t *testing.T) {
	w, err := world.New(newCatalog(), world.WithSetup(func(w *world.World) {
		extdata.Install(w)
	}))
	require.NoError(t, err)
	store, _ := world.ReadResource[extdata.Store](w)

	for range 4 {
		store.GetOrCreate(w.Spawn(makeKnife))
	}
	// A record whose bill was never registered with the world.
	store.GetOrCreate(bill.NewProduction(77, makeKnife))

	sweep := &extdata.SweepSystem{Every: 3}
	scheduler := world.NewScheduler(w)
	scheduler.Register(sweep)

	scheduler.Once(t.Context(), 1)
	assert.Equal(t, 1, sweep.Swept)
	assert.Equal(t, []int{1, 2, 3, 4}, store.Keys())

	store.GetOrCreate(bill.NewProduction(78, makeKnife))
	scheduler.Once(t.Context(), 1)
	scheduler.Once(t.Context(), 1)
	assert.Equal(t, 1, sweep.Swept, "only sweeps every third tick")

	scheduler.Once(t.Context(), 1)
	assert.Equal(t, 2, sweep.Swept)
	assert.Equal(t, 4, store.Len())
}
