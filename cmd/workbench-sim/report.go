package main

import (
	"io"
	"runtime"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/workbench/slot"
	"github.com/plus3/workbench/world"
	"github.com/prometheus/client_golang/prometheus"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Tick     time.Duration
	Bills    int
	Legacy   int
	Driver   string

	// Results
	TotalTime  time.Duration
	Ticks      int64
	LiveBills  int
	Records    int
	Touched    int64
	Destroyed  int64
	Spawned    int64
	Swept      int
	Autosaves  int
	Mismatches int
	Scheduler  *world.SchedulerStats
	Metrics    []Metric
	Saves      []slot.Info

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Metric is one sample of a gathered Prometheus family.
type Metric struct {
	Name   string
	Labels string
	Value  float64
}

func gatherMetrics(g prometheus.Gatherer) ([]Metric, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var out []Metric
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			}
			out = append(out, Metric{Name: mf.GetName(), Labels: strings.Join(labels, ","), Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Workbench Simulation Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Tick Interval:** {{.Tick}}
- **Initial Bills:** {{.Bills}} ({{.Legacy}} legacy)
- **Slot Driver:** {{.Driver}}

## Results
- **Total Time:** {{.TotalTime}}
- **Ticks:** {{.Ticks}}
- **Live Bills:** {{.LiveBills}}
- **Records:** {{.Records}}
- **Bills Touched:** {{.Touched}}
- **Destroyed / Spawned:** {{.Destroyed}} / {{.Spawned}}
- **Swept Records:** {{.Swept}}
- **Autosaves:** {{.Autosaves}}
- **Round Trip Mismatches:** {{.Mismatches}}

## Systems
{{range .Scheduler.Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Metrics
{{range .Metrics}}- {{.Name}}{{if .Labels}}{{"{"}}{{.Labels}}{{"}"}}{{end}} {{.Value}}
{{end}}
## Saves
{{range .Saves}}- {{.Name}}: {{.Size}} bytes
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
