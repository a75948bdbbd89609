package metrics

import (
	"math"
	"sync"
	"time"
)

// OperationStats tracks per-session statistics for vault calls: call
// counts, duration mean and spread, and the HTTP status distribution.
type OperationStats struct {
	start         time.Time
	counts        int
	executionTime time.Duration
	variance      time.Duration
	statusCodes   map[string]uint64
	mu            sync.Mutex
	maxStatuses   int // Maximum number of status codes to track
}

// NewOperationStats creates a new OperationStats instance
func NewOperationStats() *OperationStats {
	return &OperationStats{
		statusCodes: make(map[string]uint64),
		maxStatuses: 100, // Limit to prevent unbounded growth
	}
}

// StartClock begins timing the session.
func (os *OperationStats) StartClock() {
	os.mu.Lock()
	defer os.mu.Unlock()
	os.start = time.Now()
}

// RecordOperation records one completed vault call with its duration
// and HTTP status ("" for transport faults with no response).
func (os *OperationStats) RecordOperation(duration time.Duration, status string) {
	os.mu.Lock()
	defer os.mu.Unlock()

	os.executionTime += duration
	os.counts++

	if status != "" {
		os.statusCodes[status]++

		// If we've exceeded the maximum number of statuses, remove the least frequent one
		if len(os.statusCodes) > os.maxStatuses {
			var minStatus string
			var minCount uint64 = ^uint64(0)
			for code, count := range os.statusCodes {
				if count < minCount {
					minCount = count
					minStatus = code
				}
			}
			if minStatus != "" {
				delete(os.statusCodes, minStatus)
			}
		}
	}

	// Running approximation: diff against the current mean.
	currentMean := os.executionTime / time.Duration(os.counts)
	diff := duration - currentMean
	os.variance += diff * diff
}

// OperationCount returns the number of recorded calls.
func (os *OperationStats) OperationCount() int {
	os.mu.Lock()
	defer os.mu.Unlock()
	return os.counts
}

// Duration returns the total elapsed time since starting the clock.
func (os *OperationStats) Duration() time.Duration {
	os.mu.Lock()
	defer os.mu.Unlock()
	return time.Since(os.start)
}

// MeanExecutionTime calculates the mean call duration.
func (os *OperationStats) MeanExecutionTime() time.Duration {
	os.mu.Lock()
	defer os.mu.Unlock()
	if os.counts == 0 {
		return 0
	}
	return os.executionTime / time.Duration(os.counts)
}

// StandardDeviation calculates the standard deviation of call durations.
func (os *OperationStats) StandardDeviation() time.Duration {
	os.mu.Lock()
	defer os.mu.Unlock()
	if os.counts <= 1 {
		return 0
	}
	locVariance := os.variance
	locVariance /= time.Duration(os.counts)
	return time.Duration(math.Sqrt(float64(locVariance)))
}

// StatusCodes returns a copy of the HTTP status distribution.
func (os *OperationStats) StatusCodes() map[string]uint64 {
	os.mu.Lock()
	defer os.mu.Unlock()

	result := make(map[string]uint64)
	for k, v := range os.statusCodes {
		result[k] = v
	}
	return result
}
