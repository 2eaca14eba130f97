package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Money pairs an exact decimal amount with an ISO 4217 currency code.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney validates and constructs a Money value. Amounts carry at
// most two fractional digits; the currency is a three-letter
// uppercase code.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if amount.Exponent() < -2 {
		return Money{}, fmt.Errorf("amount %s has more than 2 fractional digits", amount)
	}
	if !validCurrency(currency) {
		return Money{}, fmt.Errorf("currency %q is not a 3-letter uppercase code", currency)
	}
	return Money{Amount: amount, Currency: currency}, nil
}

func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// ValidityWindow is a closed [Start, End] interval in a single fixed
// timezone. Both ends are inclusive.
type ValidityWindow struct {
	Start time.Time
	End   time.Time
}

// Covers reports whether t falls inside the window, boundaries
// included.
func (w ValidityWindow) Covers(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Validate rejects reversed windows. Called on the write path only;
// the resolver assumes stored windows are well formed.
func (w ValidityWindow) Validate() error {
	if w.End.Before(w.Start) {
		return fmt.Errorf("window start %s is after end %s", w.Start, w.End)
	}
	return nil
}

// Brand holds presentation data for the owning brand. It never
// participates in resolution beyond the BrandID match.
type Brand struct {
	ID          int64
	Name        string
	Description string
}

// PriceRecord is the atomic pricing fact. Records are created and
// maintained outside this package and are read-only here.
type PriceRecord struct {
	ID        int64
	ProductID int64
	BrandID   int64
	Brand     Brand
	PriceList int
	Window    ValidityWindow
	Priority  int
	Price     Money
}

// Query is the immutable input to a single resolution.
type Query struct {
	Instant   time.Time
	ProductID int64
	BrandID   int64
}
