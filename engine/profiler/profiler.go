//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Enabled reports whether the binary was built with the profile tag.
const Enabled = true

// Init must be called once (e.g., on app start) with a capacity (#spans).
// Example: profiler.Init(1 << 20) // ~1M scope samples
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	evrb.init(capacity)
}

// Start begins a scope and returns an end func to be deferred.
func Start(name string) func() {
	if !evrb.ready.Load() {
		return func() {}
	}
	fid := intern(name)
	now := time.Now().UnixNano()
	evrb.push(evEntry{AtNS: now, FrameID: fid, Open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < now {
			end = now
		}
		evrb.push(evEntry{AtNS: end, FrameID: fid, Open: false})
		record(fid, time.Duration(end-now))
	}
}

// Stats returns the accumulated timings per scope name, sorted by name.
func Stats() []Scope {
	muFrames.Lock()
	defer muFrames.Unlock()
	out := make([]Scope, 0, len(totals))
	for id, s := range totals {
		s.Name = frames[id]
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Reset clears the accumulated timings. The event ring is kept.
func Reset() {
	muFrames.Lock()
	clear(totals)
	muFrames.Unlock()
}

// WriteSpeedscope dumps the recorded events as an evented speedscope profile.
func WriteSpeedscope(path string) error {
	evs := evrb.snapshot()
	if len(evs) == 0 {
		return errors.New("profiler: no events to dump")
	}
	return dumpSpeedscopeEvents(evs, path)
}

// ---------- event ring ----------

type evEntry struct {
	AtNS    int64
	FrameID int
	Open    bool
}

type evRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []evEntry
}

func (r *evRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]evEntry, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *evRing) push(e evEntry) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot preserves write order.
func (r *evRing) snapshot() []evEntry {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]evEntry, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var evrb evRing

// ---------- names and totals ----------

var (
	muFrames sync.Mutex
	frames   []string
	index    = map[string]int{}
	totals   = map[int]Scope{}
)

func intern(name string) int {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}

func record(id int, d time.Duration) {
	muFrames.Lock()
	s := totals[id]
	s.Count++
	s.Total += d
	s.Last = d
	if d > s.Max {
		s.Max = d
	}
	totals[id] = s
	muFrames.Unlock()
}

// ---------- speedscope dump ----------

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"` // "evented"
	Name       string    `json:"name"`
	Unit       string    `json:"unit"` // "microseconds"
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since first event
	Frame int    `json:"frame"`
}

func dumpSpeedscopeEvents(evs []evEntry, path string) error {
	muFrames.Lock()
	fs := make([]ssFrame, len(frames))
	for i, name := range frames {
		fs[i] = ssFrame{Name: name}
	}
	muFrames.Unlock()

	base := evs[0].AtNS
	endUS, lastUS := int64(0), int64(-1)
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)

	for _, e := range evs {
		atUS := max((e.AtNS-base)/1000, lastUS)
		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.FrameID})
			stack = append(stack, e.FrameID)
		} else {
			// ring wrapped mid-scope: drop unmatched closes
			if len(stack) == 0 || stack[len(stack)-1] != e.FrameID {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.FrameID})
		}
		lastUS = atUS
		endUS = max(endUS, atUS)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	if len(out) == 0 {
		return errors.New("profiler: no usable events after filtering")
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "arbor",
			Unit:     "microseconds",
			EndValue: endUS,
			Events:   out,
		}},
		Exporter: "arbor-profiler",
		Name:     "arbor capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("profiler: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
