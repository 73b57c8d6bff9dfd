package extdata

import (
	"testing"

	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/filter"
	"github.com/plus3/workbench/identity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	ids, err := identity.ForBills()
	require.NoError(t, err)

	knife := &bill.ThingDef{DefName: "MeleeWeapon_Knife", BaseMarketValue: 30}
	makeKnife := &bill.RecipeDef{DefName: "Make_Knife", Products: []bill.Product{{Thing: knife, Count: 1}}}
	cleanFloor := &bill.RecipeDef{DefName: "Clean_Floor"}

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	store := NewStore(ids, WithMetrics(m))

	store.GetOrCreate(bill.NewProduction(1, makeKnife))
	store.GetOrCreate(bill.NewProduction(2, cleanFloor))
	store.GetOrCreate(bill.NewProduction(3, cleanFloor))
	store.GetOrCreate(bill.NewLegacyProduction(4, makeKnife, filter.ForThing("MeleeWeapon_Knife")))
	store.GetOrCreate(bill.NewProduction(1, makeKnife))
	store.Delete(bill.NewProduction(2, cleanFloor))
	store.Delete(bill.NewProduction(2, cleanFloor))
	store.Sweep(func(key int) bool { return key != 3 })

	assert.Equal(t, 2.0, testutil.ToFloat64(m.created.WithLabelValues("default")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.created.WithLabelValues("filtered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.created.WithLabelValues("migrated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.swept))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.records))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeCreated(StrategyDefault, 1)
		m.observeDeleted(1, 0)
		m.observeSwept(1, 0)
		m.observeSize(0)
	})
}
