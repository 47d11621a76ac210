// SPDX-License-Identifier: MPL-2.0

// Package memusage writes the launcher's resource-usage report: one
// line per memory metric, in megabytes with two decimals. The report
// is best-effort diagnostics for abnormal child terminations and must
// never fail the caller.
package memusage

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"
)

const bytesPerMB = 1024 * 1024

// Metric is one labeled memory reading in bytes.
type Metric struct {
	Name  string
	Bytes uint64
}

// Collect gathers the current process's memory metrics. Readings the
// OS refuses to provide are simply omitted.
func Collect() []Metric {
	var metrics []Metric

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil && info != nil {
			metrics = append(metrics,
				Metric{Name: "rss", Bytes: info.RSS},
				Metric{Name: "vms", Bytes: info.VMS},
				Metric{Name: "swap", Bytes: info.Swap},
			)
		}
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	metrics = append(metrics,
		Metric{Name: "heap alloc", Bytes: stats.HeapAlloc},
		Metric{Name: "heap sys", Bytes: stats.HeapSys},
	)
	return metrics
}

// Report writes Collect's metrics to w, one line each. Write errors
// are swallowed: diagnostics never block process termination.
func Report(w io.Writer) {
	Fprint(w, Collect())
}

// Fprint renders the given metrics to w.
func Fprint(w io.Writer, metrics []Metric) {
	for _, m := range metrics {
		fmt.Fprintf(w, "%s: %.2f MB\n", m.Name, float64(m.Bytes)/bytesPerMB)
	}
}
