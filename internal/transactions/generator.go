package transactions

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"vaulttx/internal/utils"
)

// Source produces synthetic transactions for the commands.
type Source interface {
	// Generate returns one transaction with randomized fields.
	Generate() Transaction

	// Batch returns n independently generated transactions in order.
	Batch(n int) []Transaction
}

// Generator builds transactions with randomized fields: a 26-digit
// account number, a username-style account name, an IBAN-shaped string
// (not checksum-validated), a postal address and an amount in
// [1.00, 10000.00) with two fractional digits.
type Generator struct {
	rng *rand.Rand
}

// Ensure Generator implements Source interface
var _ Source = (*Generator)(nil)

func NewGenerator() *Generator {
	return &Generator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededGenerator returns a deterministic generator for tests.
func NewSeededGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

var (
	nameParts = []string{
		"alpha", "bravo", "carter", "delta", "echo", "finch", "gray",
		"harper", "iris", "jasper", "kira", "lane", "miles", "nova",
		"orion", "piper", "quinn", "reed", "sage", "tate", "vega", "wren",
	}
	streetNames = []string{
		"Oak", "Maple", "Cedar", "Birch", "Elm", "Willow", "Aspen",
		"Juniper", "Linden", "Chestnut",
	}
	streetSuffixes = []string{"Street", "Avenue", "Lane", "Drive", "Court", "Road"}
	cities         = []string{
		"Springfield", "Riverton", "Fairview", "Georgetown", "Clinton",
		"Salem", "Madison", "Ashland", "Oxford", "Milton",
	}
	countryCodes = []string{"GB", "DE", "NL", "FR", "PL", "ES", "IT"}
)

func (g *Generator) Generate() Transaction {
	txnType := TypeSending
	if g.rng.Intn(2) == 1 {
		txnType = TypeReceiving
	}

	return Transaction{
		AccountNumber: utils.RandAccountNumber(AccountNumberLength),
		AccountName:   g.accountName(),
		IBAN:          g.iban(),
		Address:       g.address(),
		Amount:        g.amount(),
		Type:          txnType,
	}
}

func (g *Generator) Batch(n int) []Transaction {
	if n <= 0 {
		return nil
	}
	batch := make([]Transaction, n)
	for i := range batch {
		batch[i] = g.Generate()
	}
	return batch
}

func (g *Generator) accountName() string {
	first := nameParts[g.rng.Intn(len(nameParts))]
	second := nameParts[g.rng.Intn(len(nameParts))]
	return fmt.Sprintf("%s_%s%02d", first, second, g.rng.Intn(100))
}

// iban produces an IBAN-shaped string (country code, check digits, bank
// code, account part). It is not validated against checksum rules.
func (g *Generator) iban() string {
	country := countryCodes[g.rng.Intn(len(countryCodes))]
	bank := make([]byte, 4)
	for i := range bank {
		bank[i] = byte('A' + g.rng.Intn(26))
	}
	return fmt.Sprintf("%s%02d%s%s", country, g.rng.Intn(100), bank, utils.RandDigits(14))
}

func (g *Generator) address() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s %s, %s %05d",
		1+g.rng.Intn(9999),
		streetNames[g.rng.Intn(len(streetNames))],
		streetSuffixes[g.rng.Intn(len(streetSuffixes))],
		cities[g.rng.Intn(len(cities))],
		g.rng.Intn(100000),
	)
	return sb.String()
}

// amount draws from [1.00, 10000.00) and rounds half away from zero to
// two decimals.
func (g *Generator) amount() float64 {
	v := 1.0 + g.rng.Float64()*9999.0
	return math.Round(v*100) / 100
}
