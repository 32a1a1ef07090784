package status

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Registry collects run telemetry: particle counts, beats entered, frames
// drawn. The driver caches pointers at construction; the tick loop writes
// lock-free, the CLI reads a snapshot after the run
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Snapshot renders every metric as "key=value" lines in sorted key order
func (r *Registry) Snapshot() []string {
	var out []string
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", key, ptr.Load()))
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s=%.3f", key, ptr.Get()))
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		out = append(out, fmt.Sprintf("%s=%s", key, ptr.Get()))
	})
	sort.Strings(out)
	return out
}

// MetricMap is a thread-safe registry for metrics of type T
// Registration uses a mutex; cached pointer access is lock-free
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{
		items: make(map[string]*T),
	}
}

// Get returns the metric pointer for key, creating it if absent
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	if ptr, ok := m.items[key]; ok {
		m.mu.RUnlock()
		return ptr
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if ptr, ok := m.items[key]; ok {
		return ptr
	}
	ptr := new(T)
	m.items[key] = ptr
	return ptr
}

// Range visits every metric; iteration order is unspecified, Snapshot
// sorts its output lines itself
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for k, ptr := range m.items {
		fn(k, ptr)
	}
}

// Count returns the number of registered metrics
func (m *MetricMap[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// AtomicFloat provides atomic float64 operations via bit conversion
// Zero value is ready to use
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// AtomicString holds a string behind an atomic pointer
// Zero value reads as ""
type AtomicString struct {
	val atomic.Pointer[string]
}

func (s *AtomicString) Set(val string) {
	s.val.Store(&val)
}

func (s *AtomicString) Get() string {
	if p := s.val.Load(); p != nil {
		return *p
	}
	return ""
}
