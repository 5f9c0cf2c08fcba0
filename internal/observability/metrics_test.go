package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/vehicles", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/vehicles", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/vehicles", "POST", "VALIDATION_FAILED")
	m.RecordSync("vehicle", SyncSent)
	m.RecordSync("vehicle", SyncSent)
	m.RecordSync("vehicle", SyncFailed)

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/vehicles|GET|200"])
	assert.Equal(t, int64(20), snap.RequestLatencyMs["/api/vehicles|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/vehicles|POST|VALIDATION_FAILED"])
	assert.Equal(t, int64(2), m.SyncCount("vehicle", SyncSent))
	assert.Equal(t, int64(1), snap.Sync["vehicle|failed"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordSync("uniform", SyncSent)
	assert.Zero(t, m.SyncCount("uniform", SyncSent))
	assert.Empty(t, m.Snapshot().Requests)
}
