// Package profiling collects per-tick wall-clock totals and counters for the
// meshing pipeline. Everything is cleared at the start of a tick and read at
// its end, so the cost stays one mutex per sample.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu       sync.Mutex
	timings  = make(map[string]time.Duration)
	counters = make(map[string]int64)
)

// Track returns a stop function that adds the elapsed time to name's total.
// Usage: defer profiling.Track("mesher.Mesh")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		timings[name] += d
		mu.Unlock()
	}
}

// Count adds n to a named counter.
func Count(name string, n int64) {
	mu.Lock()
	counters[name] += n
	mu.Unlock()
}

// ResetTick clears all totals. Call at the start of each update tick.
func ResetTick() {
	mu.Lock()
	timings = make(map[string]time.Duration)
	counters = make(map[string]int64)
	mu.Unlock()
}

// Timings returns a copy of the current duration totals.
func Timings() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(timings))
	for k, v := range timings {
		out[k] = v
	}
	return out
}

// Counters returns a copy of the current counter totals.
func Counters() map[string]int64 {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]int64, len(counters))
	for k, v := range counters {
		out[k] = v
	}
	return out
}

// TopN formats the n largest duration totals, largest first.
func TopN(n int) string {
	ts := Timings()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ts))
	for k, v := range ts {
		list = append(list, pair{k, v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", list[i].name, float64(list[i].dur.Microseconds())/1000))
	}
	return strings.Join(parts, ", ")
}
