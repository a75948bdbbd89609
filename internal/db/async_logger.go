package db

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite/sqlitex"

	"vaulttx/internal/logger"
)

// AsyncLogger handles asynchronous operation logging to the database
type AsyncLogger struct {
	opChan    chan *OperationRecord
	wg        sync.WaitGroup
	batchSize int
	interval  time.Duration
	done      chan struct{}
}

// OperationRecord holds data for a single vault call log
type OperationRecord struct {
	SessionID    string
	Operation    string
	RequestJSON  string
	ResponseJSON *string
	DurationMs   int
	Success      bool
	StatusCode   int
}

var (
	asyncLogger *AsyncLogger
	once        sync.Once
)

// InitAsyncLogger initializes the asynchronous logger
func InitAsyncLogger(bufferSize, batchSize int, interval time.Duration) {
	once.Do(func() {
		asyncLogger = &AsyncLogger{
			opChan:    make(chan *OperationRecord, bufferSize),
			batchSize: batchSize,
			interval:  interval,
			done:      make(chan struct{}),
		}
		asyncLogger.start()
	})
}

// StopAsyncLogger stops the background logger and flushes remaining records
func StopAsyncLogger() {
	if asyncLogger != nil {
		close(asyncLogger.done)
		asyncLogger.wg.Wait()
	}
}

// LogOperation queues a vault call for logging
func LogOperation(record *OperationRecord) {
	if asyncLogger == nil {
		// Fallback to synchronous if async logger isn't initialized
		if err := InsertOperation(
			record.SessionID,
			record.Operation,
			record.RequestJSON,
			record.ResponseJSON,
			record.DurationMs,
			record.Success,
			record.StatusCode,
		); err != nil {
			logger.Get().Error("synchronous operation insert failed", zap.Error(err))
		}
		return
	}

	select {
	case asyncLogger.opChan <- record:
		// Queued successfully
	default:
		// Channel full, drop to prevent blocking the caller
		logger.Get().Warn("operation log channel full, dropping record",
			zap.String("operation", record.Operation))
	}
}

func (l *AsyncLogger) start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		batch := make([]*OperationRecord, 0, l.batchSize)
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()

		flush := func() {
			if len(batch) > 0 {
				if err := l.writeBatch(batch); err != nil {
					logger.Get().Error("operation log batch write failed", zap.Error(err))
				}
				batch = batch[:0]
			}
		}

		for {
			select {
			case record := <-l.opChan:
				batch = append(batch, record)
				if len(batch) >= l.batchSize {
					flush()
				}
			case <-ticker.C:
				flush()
			case <-l.done:
				// Drain whatever is still queued, then flush
				for {
					select {
					case record := <-l.opChan:
						batch = append(batch, record)
						if len(batch) >= l.batchSize {
							flush()
						}
						continue
					default:
					}
					break
				}
				flush()
				return
			}
		}
	}()
}

func (l *AsyncLogger) writeBatch(batch []*OperationRecord) error {
	if dbConn == nil {
		return fmt.Errorf("database not initialized")
	}

	// Use a transaction for the entire batch
	err := sqlitex.ExecuteTransient(dbConn, "BEGIN IMMEDIATE", nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlitex.ExecuteTransient(dbConn, "ROLLBACK", nil) // Rollback if not committed

	insertSQL := `
		INSERT INTO operations (
			session_id, operation, request_json, response_json,
			duration_ms, success, status_code
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for _, record := range batch {
		err = sqlitex.ExecuteTransient(dbConn, insertSQL, &sqlitex.ExecOptions{
			Args: []interface{}{
				record.SessionID,
				record.Operation,
				record.RequestJSON,
				derefOrNil(record.ResponseJSON),
				record.DurationMs,
				record.Success,
				record.StatusCode,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to insert record in batch: %w", err)
		}
	}

	err = sqlitex.ExecuteTransient(dbConn, "COMMIT", nil)
	if err != nil {
		return fmt.Errorf("failed to commit batch transaction: %w", err)
	}

	return nil
}
