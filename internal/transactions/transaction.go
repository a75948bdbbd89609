package transactions

import (
	"fmt"
	"strings"
)

// Type enumerates the direction of a transaction.
type Type string

const (
	TypeSending   Type = "sending"
	TypeReceiving Type = "receiving"
)

// AccountNumberLength is the fixed length of generated account numbers.
const AccountNumberLength = 26

// Transaction is a synthetic financial transaction record. The account
// number acts as the de-facto lookup key in the test suite; the vault
// itself does not enforce uniqueness.
type Transaction struct {
	AccountNumber string  `json:"account_number"`
	AccountName   string  `json:"account_name"`
	IBAN          string  `json:"iban"`
	Address       string  `json:"address"`
	Amount        float64 `json:"amount"`
	Type          Type    `json:"type"`
}

// Validate checks the field constraints the generator guarantees.
func (t Transaction) Validate() error {
	if len(t.AccountNumber) != AccountNumberLength {
		return fmt.Errorf(
			"account number must be %d digits, got %d",
			AccountNumberLength,
			len(t.AccountNumber),
		)
	}
	if strings.Trim(t.AccountNumber, "0123456789") != "" {
		return fmt.Errorf("account number must contain only digits: %s", t.AccountNumber)
	}
	if t.Type != TypeSending && t.Type != TypeReceiving {
		return fmt.Errorf("unknown transaction type: %s", t.Type)
	}
	if t.Amount < 0 {
		return fmt.Errorf("amount must not be negative: %f", t.Amount)
	}
	return nil
}
