package metrics

import (
	"testing"
	"time"
)

func TestOperationStats(t *testing.T) {
	stats := NewOperationStats()

	// Test initial state
	if stats.OperationCount() != 0 {
		t.Errorf("Expected initial count to be 0, got %d", stats.OperationCount())
	}

	if stats.MeanExecutionTime() != 0 {
		t.Errorf("Expected initial mean execution time to be 0, got %v", stats.MeanExecutionTime())
	}

	stats.StartClock()

	// Record a few calls with different durations and statuses
	stats.RecordOperation(100*time.Millisecond, "200")
	stats.RecordOperation(200*time.Millisecond, "200")
	stats.RecordOperation(300*time.Millisecond, "401")

	if stats.OperationCount() != 3 {
		t.Errorf("Expected operation count to be 3, got %d", stats.OperationCount())
	}

	// Mean execution time (100+200+300)/3 = 200ms
	expected := 200 * time.Millisecond
	if stats.MeanExecutionTime() != expected {
		t.Errorf("Expected mean execution time to be %v, got %v", expected, stats.MeanExecutionTime())
	}

	statusCodes := stats.StatusCodes()
	if len(statusCodes) != 2 {
		t.Errorf("Expected 2 different status codes, got %d", len(statusCodes))
	}

	if statusCodes["200"] != 2 {
		t.Errorf("Expected status '200' to have count 2, got %d", statusCodes["200"])
	}

	if statusCodes["401"] != 1 {
		t.Errorf("Expected status '401' to have count 1, got %d", statusCodes["401"])
	}

	if stats.StandardDeviation() == 0 {
		t.Error("Expected non-zero standard deviation for varied durations")
	}
}

func TestOperationStatsTransportFault(t *testing.T) {
	stats := NewOperationStats()

	// Transport faults have no status; the call still counts.
	stats.RecordOperation(50*time.Millisecond, "")

	if stats.OperationCount() != 1 {
		t.Errorf("Expected operation count 1, got %d", stats.OperationCount())
	}
	if len(stats.StatusCodes()) != 0 {
		t.Error("Transport fault should not record a status code")
	}
}

func TestStatusCodesReturnsCopy(t *testing.T) {
	stats := NewOperationStats()
	stats.RecordOperation(10*time.Millisecond, "200")

	codes := stats.StatusCodes()
	codes["200"] = 999

	if stats.StatusCodes()["200"] != 1 {
		t.Error("StatusCodes should return a copy, not the internal map")
	}
}
