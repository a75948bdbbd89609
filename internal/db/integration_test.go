package db

import (
	"path/filepath"
	"testing"
)

// TestEndToEndIntegration tests the complete database integration
func TestEndToEndIntegration(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "integration_test.db")

	err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer Close()

	sessionID := "test-integration-session"

	requestJSON := `{"account_number":"12345678901234567890123456","amount":250.75,"type":"sending"}`
	responseJSON := `{"transactionId":"1"}`

	// Insert successful write
	err = InsertOperation(sessionID, "put", requestJSON, &responseJSON, 150, true, 200)
	if err != nil {
		t.Fatalf("Failed to insert successful operation: %v", err)
	}

	// Insert transport fault (no response, no status)
	err = InsertOperation(sessionID, "search", `{"page":1,"perPage":100}`, nil, 0, false, 0)
	if err != nil {
		t.Fatalf("Failed to insert failed operation: %v", err)
	}

	// Insert rejected delete
	deniedJSON := `{"error":"invalid credentials"}`
	err = InsertOperation(sessionID, "delete", "", &deniedJSON, 200, false, 401)
	if err != nil {
		t.Fatalf("Failed to insert rejected operation: %v", err)
	}

	stats, err := GetOperationStats(sessionID)
	if err != nil {
		t.Fatalf("Failed to get operation stats: %v", err)
	}

	if stats["total_operations"] != 3 {
		t.Errorf("Expected 3 total operations, got %v", stats["total_operations"])
	}

	if stats["successful_operations"] != 1 {
		t.Errorf("Expected 1 successful operation, got %v", stats["successful_operations"])
	}

	if stats["failed_operations"] != 2 {
		t.Errorf("Expected 2 failed operations, got %v", stats["failed_operations"])
	}

	if stats["average_duration_ms"] != 175.0 {
		t.Errorf("Expected average duration of 175.0 ms, got %v", stats["average_duration_ms"])
	}

	statusCodes, ok := stats["status_code_distribution"].(map[string]int)
	if !ok {
		t.Fatal("Status code distribution not found or wrong type")
	}

	if statusCodes["200"] != 1 {
		t.Errorf("Expected 1 operation with status 200, got %v", statusCodes["200"])
	}
	if statusCodes["401"] != 1 {
		t.Errorf("Expected 1 operation with status 401, got %v", statusCodes["401"])
	}
	if statusCodes["0"] != 1 {
		t.Errorf("Expected 1 transport fault with status 0, got %v", statusCodes["0"])
	}

	operations, ok := stats["operation_distribution"].(map[string]int)
	if !ok {
		t.Fatal("Operation distribution not found or wrong type")
	}
	for _, name := range []string{"put", "search", "delete"} {
		if operations[name] != 1 {
			t.Errorf("Expected 1 %q operation, got %v", name, operations[name])
		}
	}

	// Stats for an unknown session are empty, not an error.
	empty, err := GetOperationStats("missing-session")
	if err != nil {
		t.Fatalf("Failed to get stats for missing session: %v", err)
	}
	if empty["total_operations"] != 0 {
		t.Errorf("Expected 0 operations for missing session, got %v", empty["total_operations"])
	}
}
