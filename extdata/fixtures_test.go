package extdata_test

import (
	"sync"
	"testing"

	"github.com/plus3/workbench/bill"
	"github.com/plus3/workbench/identity"
	"github.com/stretchr/testify/require"
)

var (
	knife = &bill.ThingDef{
		DefName:         "MeleeWeapon_Knife",
		Label:           "knife",
		BaseMarketValue: 30,
		HasQuality:      true,
		UseHitPoints:    true,
	}
	steel = &bill.ThingDef{
		DefName:         "Steel",
		Label:           "steel",
		BaseMarketValue: 1.9,
		CountAsResource: true,
	}
	ash = &bill.ThingDef{
		DefName: "Filth_Ash",
		Label:   "ash",
	}

	makeKnife  = &bill.RecipeDef{DefName: "Make_Knife", Label: "make knife", Products: []bill.Product{{Thing: knife, Count: 1}}}
	smeltSteel = &bill.RecipeDef{DefName: "Smelt_Steel", Label: "smelt steel", Products: []bill.Product{{Thing: steel, Count: 10}}}
	burnTrash  = &bill.RecipeDef{DefName: "Burn_Trash", Label: "burn trash", Products: []bill.Product{{Thing: ash, Count: 1}}}
	cleanFloor = &bill.RecipeDef{DefName: "Clean_Floor", Label: "clean floor"}
)

func billIdentity(t *testing.T) identity.Extractor {
	t.Helper()
	ids, err := identity.ForBills()
	require.NoError(t, err)
	return ids
}

type logEntry struct {
	level string
	msg   string
	kv    []any
}

// recordingDiagnostics keeps every event it receives.
type recordingDiagnostics struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingDiagnostics) Warn(msg string, kv ...any) { r.add("warn", msg, kv) }
func (r *recordingDiagnostics) Info(msg string, kv ...any) { r.add("info", msg, kv) }

func (r *recordingDiagnostics) add(level, msg string, kv []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{level: level, msg: msg, kv: kv})
}

func (r *recordingDiagnostics) count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

type panickingDiagnostics struct{}

func (panickingDiagnostics) Warn(string, ...any) { panic("log viewer crashed") }
func (panickingDiagnostics) Info(string, ...any) { panic("log viewer crashed") }
