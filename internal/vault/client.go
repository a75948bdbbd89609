package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"vaulttx/internal/transactions"
)

const (
	DefaultBaseURL    = "https://vault.immudb.io/ics/api/v1"
	DefaultLedger     = "default"
	DefaultCollection = "default"
	DefaultTimeout    = 30 * time.Second
)

// Config holds the connection settings for a vault ledger collection.
// The API key is always supplied by configuration, never hardcoded.
type Config struct {
	BaseURL    string
	APIKey     string
	Ledger     string
	Collection string
	Timeout    time.Duration
}

// Client is a thin client for the immudb Vault document API. All calls
// are synchronous, carry the caller's context and report failures as
// either a transport error or an *APIError.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     *zap.Logger
}

// Ensure Client implements Store interface
var _ Store = (*Client)(nil)

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("vault: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Ledger == "" {
		cfg.Ledger = DefaultLedger
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// Ledger returns the ledger name this client targets.
func (c *Client) Ledger() string { return c.cfg.Ledger }

// Collection returns the collection name this client targets.
func (c *Client) Collection() string { return c.cfg.Collection }

func (c *Client) collectionURL() string {
	return fmt.Sprintf(
		"%s/ledger/%s/collection/%s",
		c.cfg.BaseURL,
		c.cfg.Ledger,
		c.cfg.Collection,
	)
}

// Put submits one or more transactions as a single document write. A
// single transaction is sent unwrapped; multiple transactions are
// wrapped in the batch envelope, which the vault stores as one revision
// holding the nested document array.
func (c *Client) Put(ctx context.Context, docs ...transactions.Transaction) error {
	if len(docs) == 0 {
		return errors.New("vault: no documents to put")
	}

	var payload interface{}
	if len(docs) == 1 {
		payload = docs[0]
	} else {
		payload = batchEnvelope{Document: docs}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPut,
		c.collectionURL()+"/document",
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("building put request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	status, respBody, err := c.do(req)
	if err != nil {
		return fmt.Errorf("executing put request: %w", err)
	}
	if status != http.StatusOK {
		c.logger.Warn("document write rejected",
			zap.Int("status", status),
			zap.Int("documents", len(docs)),
		)
		return &APIError{StatusCode: status, Body: string(respBody)}
	}

	c.logger.Debug("document written", zap.Int("documents", len(docs)))
	return nil
}

// Search fetches one page of revisions from the collection.
func (c *Client) Search(ctx context.Context, page, perPage int) (*SearchResponse, error) {
	body, err := json.Marshal(SearchRequest{Page: page, PerPage: perPage})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.collectionURL()+"/documents/search",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	status, respBody, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("executing search request: %w", err)
	}
	if status != http.StatusOK {
		c.logger.Warn("search rejected",
			zap.Int("status", status),
			zap.Int("page", page),
		)
		return nil, &APIError{StatusCode: status, Body: string(respBody)}
	}

	var resp SearchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	c.logger.Debug("page fetched",
		zap.Int("page", page),
		zap.Int("revisions", len(resp.Revisions)),
	)
	return &resp, nil
}

// DeleteCollection removes every document in the collection. The vault
// answers 200 even when the collection is already empty, so deleting
// twice is not an error. Irreversible; there is no dry-run mode.
func (c *Client) DeleteCollection(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.collectionURL(), nil)
	if err != nil {
		return fmt.Errorf("building delete request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	status, respBody, err := c.do(req)
	if err != nil {
		return fmt.Errorf("executing delete request: %w", err)
	}
	if status != http.StatusOK {
		c.logger.Warn("collection delete rejected",
			zap.Int("status", status),
			zap.String("body", string(respBody)),
		)
		return &APIError{StatusCode: status, Body: string(respBody)}
	}

	c.logger.Info("collection deleted",
		zap.String("ledger", c.cfg.Ledger),
		zap.String("collection", c.cfg.Collection),
	)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("accept", "application/json")
	req.Header.Set("X-API-Key", c.cfg.APIKey)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response body: %w", err)
	}
	return resp.StatusCode, body, nil
}
