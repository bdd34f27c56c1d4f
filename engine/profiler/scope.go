package profiler

import (
	"runtime"
	"time"
)

// Scope is the accumulated timing of one named scope.
type Scope struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
	Last  time.Duration
}

// Mean is Total divided by Count.
func (s Scope) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func NumGoroutine() int { return runtime.NumGoroutine() }
