package db

import (
	"fmt"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var dbConn *sqlite.Conn

// InitDB initializes the database connection and creates tables
func InitDB(dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	conn, err := sqlite.OpenConn(dbPath, sqlite.OpenReadWrite|sqlite.OpenCreate)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	dbConn = conn

	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// InitDBWithConn initializes with an existing connection (for testing)
func InitDBWithConn(conn *sqlite.Conn) error {
	dbConn = conn
	return createTables()
}

// Close closes the database connection
func Close() error {
	if dbConn != nil {
		return dbConn.Close()
	}
	return nil
}

func createTables() error {
	createTableSQL := `CREATE TABLE IF NOT EXISTS operations (id INTEGER PRIMARY KEY AUTOINCREMENT, session_id TEXT NOT NULL, timestamp DATETIME DEFAULT CURRENT_TIMESTAMP, operation TEXT, request_json TEXT, response_json TEXT, duration_ms INTEGER, success BOOLEAN, status_code INTEGER)`

	if err := sqlitex.ExecuteTransient(dbConn, createTableSQL, nil); err != nil {
		return err
	}

	indexSQL1 := `CREATE INDEX IF NOT EXISTS idx_session_timestamp ON operations(session_id, timestamp)`
	if err := sqlitex.ExecuteTransient(dbConn, indexSQL1, nil); err != nil {
		return err
	}

	indexSQL2 := `CREATE INDEX IF NOT EXISTS idx_status_code ON operations(status_code)`
	return sqlitex.ExecuteTransient(dbConn, indexSQL2, nil)
}

// InsertOperation inserts one vault call record. statusCode 0 marks a
// transport fault with no HTTP response.
func InsertOperation(
	sessionID, operation, requestJSON string,
	responseJSON *string,
	durationMs int,
	success bool,
	statusCode int,
) error {
	if dbConn == nil {
		return fmt.Errorf("database not initialized")
	}

	err := sqlitex.ExecuteTransient(dbConn, "BEGIN IMMEDIATE", nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	insertSQL := `
		INSERT INTO operations (
			session_id, operation, request_json, response_json,
			duration_ms, success, status_code
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	err = sqlitex.ExecuteTransient(dbConn, insertSQL, &sqlitex.ExecOptions{
		Args: []interface{}{
			sessionID, operation, requestJSON, derefOrNil(responseJSON), durationMs, success, statusCode,
		},
	})
	if err != nil {
		sqlitex.ExecuteTransient(dbConn, "ROLLBACK", nil)
		return fmt.Errorf("failed to insert operation: %w", err)
	}

	err = sqlitex.ExecuteTransient(dbConn, "COMMIT", nil)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// derefOrNil dereferences a string pointer or returns nil if it's nil
func derefOrNil(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// GetOperationStats returns statistics for the given session.
func GetOperationStats(sessionID string) (map[string]interface{}, error) {
	if dbConn == nil {
		return nil, fmt.Errorf("database not initialized")
	}

	stats := make(map[string]interface{})

	// Use a read transaction for consistency
	err := sqlitex.ExecuteTransient(dbConn, "BEGIN", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer sqlitex.ExecuteTransient(dbConn, "ROLLBACK", nil) // Rollback if not committed

	var totalCount int
	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT COUNT(*) FROM operations WHERE session_id = ?",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				totalCount = int(stmt.ColumnInt64(0))
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	var successCount int
	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT COUNT(*) FROM operations WHERE session_id = ? AND success = 1",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				successCount = int(stmt.ColumnInt64(0))
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	var avgDuration float64
	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT AVG(duration_ms) FROM operations WHERE session_id = ? AND duration_ms > 0",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				avgDuration = stmt.ColumnFloat(0)
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	statusCodes := make(map[string]int)
	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT status_code, COUNT(*) FROM operations WHERE session_id = ? GROUP BY status_code",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				code := stmt.ColumnText(0)
				count := int(stmt.ColumnInt64(1))
				statusCodes[code] = count
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	operations := make(map[string]int)
	err = sqlitex.ExecuteTransient(
		dbConn,
		"SELECT operation, COUNT(*) FROM operations WHERE session_id = ? GROUP BY operation",
		&sqlitex.ExecOptions{
			Args: []interface{}{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				name := stmt.ColumnText(0)
				count := int(stmt.ColumnInt64(1))
				operations[name] = count
				return nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	err = sqlitex.ExecuteTransient(dbConn, "COMMIT", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	stats["total_operations"] = totalCount
	stats["successful_operations"] = successCount
	stats["failed_operations"] = totalCount - successCount
	stats["average_duration_ms"] = avgDuration
	stats["status_code_distribution"] = statusCodes
	stats["operation_distribution"] = operations

	return stats, nil
}
