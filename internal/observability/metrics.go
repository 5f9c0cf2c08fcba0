package observability

import (
	"strconv"
	"sync"
	"time"
)

// SyncOutcome labels the result of one chat-platform sync attempt.
type SyncOutcome string

const (
	SyncSent      SyncOutcome = "sent"
	SyncEdited    SyncOutcome = "edited"
	SyncRecreated SyncOutcome = "recreated"
	SyncDeleted   SyncOutcome = "deleted"
	SyncSkipped   SyncOutcome = "skipped"
	SyncFailed    SyncOutcome = "failed"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	requestLatency map[string]time.Duration
	errorCount     map[string]int64
	syncCount      map[string]int64
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Requests         map[string]int64 `json:"requests"`
	RequestLatencyMs map[string]int64 `json:"request_latency_ms"`
	Errors           map[string]int64 `json:"errors"`
	Sync             map[string]int64 `json:"sync"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		requestLatency: make(map[string]time.Duration),
		errorCount:     make(map[string]int64),
		syncCount:      make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestLatency[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordSync counts a sync attempt for a record kind.
func (m *Metrics) RecordSync(kind string, outcome SyncOutcome) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncCount[kind+"|"+string(outcome)]++
}

// SyncCount returns the counter for kind and outcome.
func (m *Metrics) SyncCount(kind string, outcome SyncOutcome) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncCount[kind+"|"+string(outcome)]
}

// Snapshot copies the counters. Latency is reported as the mean per key.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Requests:         map[string]int64{},
		RequestLatencyMs: map[string]int64{},
		Errors:           map[string]int64{},
		Sync:             map[string]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		snap.Requests[k] = v
		if v > 0 {
			snap.RequestLatencyMs[k] = (m.requestLatency[k] / time.Duration(v)).Milliseconds()
		}
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for k, v := range m.syncCount {
		snap.Sync[k] = v
	}
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
