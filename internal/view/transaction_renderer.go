package view

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"vaulttx/internal/transactions"
	"vaulttx/internal/vault"
)

// TransactionRenderer displays transactions and search pages as tables.
type TransactionRenderer struct {
	output io.Writer
}

// NewTransactionRenderer creates a new renderer with optional output destination
func NewTransactionRenderer(output io.Writer) *TransactionRenderer {
	if output == nil {
		output = os.Stdout
	}
	return &TransactionRenderer{output: output}
}

// RenderTransactions renders a flat transaction list.
func (r *TransactionRenderer) RenderTransactions(txns []transactions.Transaction) {
	if len(txns) == 0 {
		fmt.Fprintln(r.output, "No transactions in collection")
		return
	}

	table := tablewriter.NewWriter(r.output)
	table.SetHeader([]string{"#", "Account Number", "Account Name", "IBAN", "Amount", "Type"})

	for i, txn := range txns {
		table.Append([]string{
			strconv.Itoa(i + 1),
			txn.AccountNumber,
			txn.AccountName,
			txn.IBAN,
			fmt.Sprintf("%.2f", txn.Amount),
			string(txn.Type),
		})
	}

	table.Render()
	fmt.Fprintf(r.output, "Total: %d transaction(s)\n", len(txns))
}

// RenderPage renders one search page with revision metadata.
func (r *TransactionRenderer) RenderPage(page *vault.SearchResponse) {
	if page == nil || len(page.Revisions) == 0 {
		fmt.Fprintln(r.output, "Empty page")
		return
	}

	table := tablewriter.NewWriter(r.output)
	table.SetHeader([]string{"TX ID", "Revision", "Shape", "Documents", "First Account Number"})

	for _, rev := range page.Revisions {
		shape := "single"
		if rev.IsBatch() {
			shape = "batch"
		}
		first := ""
		if docs := rev.Docs(); len(docs) > 0 {
			first = docs[0].AccountNumber
		}
		table.Append([]string{
			rev.TransactionID,
			rev.RevisionID,
			shape,
			strconv.Itoa(len(rev.Docs())),
			first,
		})
	}

	table.Render()
	fmt.Fprintf(r.output, "Page %d (perPage %d): %d revision(s)\n",
		page.Page, page.PerPage, len(page.Revisions))
}

// RenderSubmitted renders a request-result pair with timing.
func (r *TransactionRenderer) RenderSubmitted(
	txns []transactions.Transaction,
	elapsed time.Duration,
) {
	fmt.Fprintln(r.output, "--- SUBMITTED ---")
	r.RenderTransactions(txns)
	fmt.Fprintf(r.output, "\nElapsed time: %s\n", elapsed.Round(time.Millisecond))
}
