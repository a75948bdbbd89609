package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"vaulttx/internal/transactions"
)

// fakeVault reproduces the remote semantics in memory: every PUT
// appends a revision (a batch envelope is stored as one revision
// holding the nested array), search paginates revisions in insertion
// order and DELETE clears the collection, answering 200 even when it
// was already empty.
type fakeVault struct {
	mu              sync.Mutex
	apiKey          string
	revisions       []json.RawMessage
	nextTxID        int
	emptySearchBody bool
}

func newFakeVault(apiKey string) *fakeVault {
	return &fakeVault{apiKey: apiKey}
}

func (f *fakeVault) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("X-API-Key") != f.apiKey {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "invalid credentials"}`)
		return
	}

	switch {
	case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/document"):
		f.handlePut(w, r)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/documents/search"):
		f.handleSearch(w, r)
	case r.Method == http.MethodDelete && strings.HasSuffix(r.URL.Path, "/collection/default"):
		f.handleDelete(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeVault) handlePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": "invalid document"}`)
		return
	}

	f.mu.Lock()
	f.nextTxID++
	f.revisions = append(f.revisions, json.RawMessage(body))
	txID := f.nextTxID
	f.mu.Unlock()

	fmt.Fprintf(w, `{"transactionId": "%d"}`, txID)
}

func (f *fakeVault) handleSearch(w http.ResponseWriter, r *http.Request) {
	if f.emptySearchBody {
		fmt.Fprint(w, `{}`)
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	start := (req.Page - 1) * req.PerPage
	end := start + req.PerPage
	if start > len(f.revisions) {
		start = len(f.revisions)
	}
	if end > len(f.revisions) {
		end = len(f.revisions)
	}

	type wireRevision struct {
		TransactionID string          `json:"transactionId"`
		Revision      string          `json:"revision"`
		Document      json.RawMessage `json:"document"`
	}
	page := struct {
		Page      int            `json:"page"`
		PerPage   int            `json:"perPage"`
		Revisions []wireRevision `json:"revisions"`
	}{Page: req.Page, PerPage: req.PerPage, Revisions: []wireRevision{}}

	for i, doc := range f.revisions[start:end] {
		page.Revisions = append(page.Revisions, wireRevision{
			TransactionID: fmt.Sprintf("%d", start+i+1),
			Revision:      "1",
			Document:      doc,
		})
	}

	if err := json.NewEncoder(w).Encode(page); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (f *fakeVault) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+f.apiKey {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error": "missing bearer token"}`)
		return
	}

	f.mu.Lock()
	f.revisions = nil
	f.mu.Unlock()

	fmt.Fprint(w, `{}`)
}

type ClientSuite struct {
	suite.Suite
	fake   *fakeVault
	server *httptest.Server
	client *Client
	gen    *transactions.Generator
}

func (suite *ClientSuite) SetupTest() {
	suite.fake = newFakeVault("test-key")
	suite.server = httptest.NewServer(suite.fake)

	client, err := NewClient(Config{
		BaseURL: suite.server.URL,
		APIKey:  "test-key",
	}, nil)
	suite.Require().NoError(err)
	suite.client = client
	suite.gen = transactions.NewSeededGenerator(1)
}

func (suite *ClientSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *ClientSuite) accountNumbers(txns []transactions.Transaction) []string {
	numbers := make([]string, len(txns))
	for i, txn := range txns {
		numbers[i] = txn.AccountNumber
	}
	return numbers
}

func (suite *ClientSuite) TestSingleWriteRoundTrip() {
	txn := suite.gen.Generate()
	suite.Require().NoError(suite.client.Put(context.Background(), txn))

	all, err := AllTransactions(context.Background(), suite.client, 0, 0)
	suite.Require().NoError(err)
	suite.Contains(suite.accountNumbers(all), txn.AccountNumber)
}

func (suite *ClientSuite) TestBatchWriteRoundTrip() {
	// A warm vault plus a batch of 110; the 100th batch element must be
	// observable in the flattened aggregate.
	suite.Require().NoError(suite.client.Put(context.Background(), suite.gen.Generate()))

	batch := suite.gen.Batch(110)
	suite.Require().NoError(suite.client.Put(context.Background(), batch...))

	all, err := AllTransactions(context.Background(), suite.client, 0, 0)
	suite.Require().NoError(err)
	suite.Len(all, 111)
	suite.Contains(suite.accountNumbers(all), batch[99].AccountNumber)
}

func (suite *ClientSuite) TestOverwriteAppendsRevision() {
	txn := suite.gen.Generate()
	suite.Require().NoError(suite.client.Put(context.Background(), txn))

	txn.Amount = 999
	suite.Require().NoError(suite.client.Put(context.Background(), txn))

	all, err := AllTransactions(context.Background(), suite.client, 0, 0)
	suite.Require().NoError(err)

	// The vault appends a revision rather than mutating in place, so
	// both versions remain visible.
	var matches int
	var overwritten bool
	for _, got := range all {
		if got.AccountNumber == txn.AccountNumber {
			matches++
			if got.Amount == 999 {
				overwritten = true
			}
		}
	}
	suite.Equal(2, matches)
	suite.True(overwritten, "updated amount should be observable")
}

func (suite *ClientSuite) TestWriteAfterPurge() {
	suite.Require().NoError(suite.client.Put(context.Background(), suite.gen.Generate()))
	suite.Require().NoError(suite.client.DeleteCollection(context.Background()))

	txn := suite.gen.Generate()
	suite.Require().NoError(suite.client.Put(context.Background(), txn))

	all, err := AllTransactions(context.Background(), suite.client, 0, 0)
	suite.Require().NoError(err)
	suite.Equal([]string{txn.AccountNumber}, suite.accountNumbers(all))
}

func (suite *ClientSuite) TestDeleteIdempotent() {
	suite.Require().NoError(suite.client.DeleteCollection(context.Background()))
	// Deleting an already-empty collection still succeeds.
	suite.NoError(suite.client.DeleteCollection(context.Background()))
}

func (suite *ClientSuite) TestPagination() {
	for _, txn := range suite.gen.Batch(120) {
		suite.Require().NoError(suite.client.Put(context.Background(), txn))
	}

	all, err := AllTransactions(context.Background(), suite.client, 50, 0)
	suite.Require().NoError(err)
	suite.Len(all, 120)

	capped, err := AllTransactions(context.Background(), suite.client, 50, 1)
	suite.Require().NoError(err)
	suite.Len(capped, 50)
}

func (suite *ClientSuite) TestAuthFailure() {
	client, err := NewClient(Config{
		BaseURL: suite.server.URL,
		APIKey:  "wrong-key",
	}, nil)
	suite.Require().NoError(err)

	err = client.Put(context.Background(), suite.gen.Generate())
	suite.Require().Error(err)
	suite.True(IsStatus(err, http.StatusUnauthorized), "expected 401, got: %v", err)

	var apiErr *APIError
	suite.Require().ErrorAs(err, &apiErr)
	suite.Contains(apiErr.Body, "invalid credentials")

	_, err = client.Search(context.Background(), 1, 100)
	suite.True(IsStatus(err, http.StatusUnauthorized))

	err = client.DeleteCollection(context.Background())
	suite.True(IsStatus(err, http.StatusUnauthorized))
}

func (suite *ClientSuite) TestTransportFault() {
	suite.server.Close()

	// A dead endpoint must surface an error, never an empty success.
	resp, err := suite.client.Search(context.Background(), 1, 100)
	suite.Error(err)
	suite.Nil(resp)

	suite.Error(suite.client.Put(context.Background(), suite.gen.Generate()))
	suite.Error(suite.client.DeleteCollection(context.Background()))
}

func (suite *ClientSuite) TestSearchWithoutRevisionsField() {
	suite.fake.emptySearchBody = true

	resp, err := suite.client.Search(context.Background(), 1, 100)
	suite.Require().NoError(err)
	suite.Empty(resp.Revisions)

	all, err := AllTransactions(context.Background(), suite.client, 0, 0)
	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *ClientSuite) TestPutWithoutDocuments() {
	suite.Error(suite.client.Put(context.Background()))
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(Config{APIKey: "k"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Ledger() != DefaultLedger || client.Collection() != DefaultCollection {
		t.Errorf("expected default ledger/collection, got %s/%s", client.Ledger(), client.Collection())
	}

	if _, err := NewClient(Config{}, nil); err == nil {
		t.Error("missing API key should be rejected")
	}
}
