package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"vaulttx/internal/config"
	"vaulttx/internal/db"
	"vaulttx/internal/logger"
	"vaulttx/internal/metrics"
	"vaulttx/internal/transactions"
	"vaulttx/internal/vault"
)

// Service ties the vault store, the transaction generator and the
// per-session bookkeeping (metrics, operation log) together. All
// operations are synchronous and stateless beyond the shared remote
// collection.
type Service struct {
	store     vault.Store
	gen       transactions.Source
	stats     *metrics.OperationStats
	sessionID string
	pageSize  int
	maxPages  int
	logOps    bool
}

// NewService builds a service backed by the real vault client using the
// global configuration.
func NewService(cfg *config.Config) (*Service, error) {
	client, err := vault.NewClient(vault.Config{
		BaseURL:    cfg.GetBaseURL(),
		APIKey:     cfg.GetAPIKey(),
		Ledger:     cfg.GetLedger(),
		Collection: cfg.GetCollection(),
		Timeout:    cfg.GetTimeout(),
	}, logger.Get())
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}

	svc := newService(client, transactions.NewGenerator(), cfg.GetPageSize())
	svc.logOps = cfg.GetDbPath() != ""

	fmt.Printf("Vault client ready: ledger '%s', collection '%s'\n",
		client.Ledger(), client.Collection())
	return svc, nil
}

// NewServiceWithStore builds a service on an arbitrary store, used by
// tests to substitute an in-memory fake.
func NewServiceWithStore(
	store vault.Store,
	gen transactions.Source,
	pageSize int,
) *Service {
	return newService(store, gen, pageSize)
}

func newService(store vault.Store, gen transactions.Source, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = vault.DefaultPageSize
	}
	stats := metrics.NewOperationStats()
	stats.StartClock()

	return &Service{
		store:     store,
		gen:       gen,
		stats:     stats,
		sessionID: uuid.New().String(),
		pageSize:  pageSize,
		maxPages:  vault.DefaultMaxPages,
	}
}

// SessionID identifies this run in the operation log.
func (s *Service) SessionID() string { return s.sessionID }

// Stats exposes the session metrics collector.
func (s *Service) Stats() *metrics.OperationStats { return s.stats }

// Generate returns one synthetic transaction without submitting it.
func (s *Service) Generate() transactions.Transaction {
	return s.gen.Generate()
}

// GenerateBatch returns n synthetic transactions without submitting them.
func (s *Service) GenerateBatch(n int) []transactions.Transaction {
	return s.gen.Batch(n)
}

// Submit writes the given transactions as a single document write; one
// transaction goes unwrapped, several go under the batch envelope.
func (s *Service) Submit(ctx context.Context, txns ...transactions.Transaction) error {
	start := time.Now()
	err := s.store.Put(ctx, txns...)
	s.record("put", txns, start, err)
	return err
}

// Page fetches one raw search page.
func (s *Service) Page(ctx context.Context, page int) (*vault.SearchResponse, error) {
	start := time.Now()
	resp, err := s.store.Search(ctx, page, s.pageSize)
	s.record("search", vault.SearchRequest{Page: page, PerPage: s.pageSize}, start, err)
	return resp, err
}

// Transactions returns the flattened current document set, walking
// pages up to the configured cap.
func (s *Service) Transactions(ctx context.Context) ([]transactions.Transaction, error) {
	start := time.Now()
	all, err := vault.AllTransactions(ctx, s.store, s.pageSize, s.maxPages)
	s.record("aggregate", nil, start, err)
	return all, err
}

// Purge deletes every document in the collection. Irreversible.
func (s *Service) Purge(ctx context.Context) error {
	start := time.Now()
	err := s.store.DeleteCollection(ctx)
	s.record("delete", nil, start, err)
	return err
}

// Close flushes the asynchronous operation log.
func (s *Service) Close() error {
	if s.logOps {
		db.StopAsyncLogger()
	}
	return nil
}

func (s *Service) record(operation string, request interface{}, start time.Time, err error) {
	elapsed := time.Since(start)
	status := statusOf(err)

	statusLabel := ""
	if status != 0 {
		statusLabel = fmt.Sprintf("%d", status)
	}
	s.stats.RecordOperation(elapsed, statusLabel)

	if !s.logOps {
		return
	}

	requestJSON := ""
	if request != nil {
		if data, merr := json.Marshal(request); merr == nil {
			requestJSON = string(data)
		}
	}

	var responseJSON *string
	var apiErr *vault.APIError
	if errors.As(err, &apiErr) {
		responseJSON = &apiErr.Body
	}

	db.LogOperation(&db.OperationRecord{
		SessionID:    s.sessionID,
		Operation:    operation,
		RequestJSON:  requestJSON,
		ResponseJSON: responseJSON,
		DurationMs:   int(elapsed.Milliseconds()),
		Success:      err == nil,
		StatusCode:   status,
	})
}

// statusOf maps an operation error to the HTTP status it carries; nil
// means 200 and a transport fault has no status at all.
func statusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var apiErr *vault.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
