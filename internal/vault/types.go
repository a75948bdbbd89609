package vault

import (
	"bytes"
	"encoding/json"
	"fmt"

	"vaulttx/internal/transactions"
)

// SearchRequest is the body of the documents/search call.
type SearchRequest struct {
	Page    int `json:"page"`
	PerPage int `json:"perPage"`
}

// SearchResponse is one page of revisions as returned by the vault.
// A payload without a revisions field decodes to an empty page.
type SearchResponse struct {
	Page      int        `json:"page"`
	PerPage   int        `json:"perPage"`
	Revisions []Revision `json:"revisions"`
}

// batchEnvelope wraps multiple documents for a single write. The vault
// stores the envelope verbatim, so batch revisions come back with the
// same nested document array.
type batchEnvelope struct {
	Document []transactions.Transaction `json:"document"`
}

// Revision is one stored version of a document. The wire contract has
// two fixed shapes for the document field: a single transaction object,
// or a batch envelope holding an ordered array of transactions. The
// shape is decided at decode time and exposed as a tagged variant.
type Revision struct {
	TransactionID string
	RevisionID    string
	DocumentID    string

	batch bool
	docs  []transactions.Transaction
}

// IsBatch reports whether this revision carried the batch envelope.
func (r Revision) IsBatch() bool {
	return r.batch
}

// Docs returns the leaf transactions of this revision in remote order.
// A single-document revision yields exactly one element.
func (r Revision) Docs() []transactions.Transaction {
	return r.docs
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var raw struct {
		TransactionID string          `json:"transactionId"`
		Revision      string          `json:"revision"`
		DocumentID    string          `json:"documentId"`
		Document      json.RawMessage `json:"document"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding revision: %w", err)
	}

	r.TransactionID = raw.TransactionID
	r.RevisionID = raw.Revision
	r.DocumentID = raw.DocumentID
	if len(raw.Document) == 0 {
		return nil
	}

	// Probe for the batch envelope: {"document": [...]}.
	var probe struct {
		Document json.RawMessage `json:"document"`
	}
	if err := json.Unmarshal(raw.Document, &probe); err != nil {
		return fmt.Errorf("decoding revision document: %w", err)
	}

	if isJSONArray(probe.Document) {
		var docs []transactions.Transaction
		if err := json.Unmarshal(probe.Document, &docs); err != nil {
			return fmt.Errorf("decoding batch revision: %w", err)
		}
		r.batch = true
		r.docs = docs
		return nil
	}

	var doc transactions.Transaction
	if err := json.Unmarshal(raw.Document, &doc); err != nil {
		return fmt.Errorf("decoding single revision: %w", err)
	}
	r.docs = []transactions.Transaction{doc}
	return nil
}

func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
