package wallet

import "github.com/shopspring/decimal"

// Price is the unit price of an asset in the reporting currency.
//
// A price can be unknown: the market-data feed had no bar for the requested
// minute, or every fetch attempt was exhausted. An unknown price is a valid,
// non-error outcome that downstream valuation must not confuse with a
// genuinely zero price.
type Price struct {
	value decimal.Decimal
	known bool
}

// NewPrice returns a known price.
func NewPrice(value decimal.Decimal) Price { return Price{value: value, known: true} }

// PriceOf is a convenient constructor for a known price from a float.
func PriceOf(value float64) Price { return NewPrice(decimal.NewFromFloat(value)) }

// UnknownPrice is the degraded outcome of an unpriceable (asset, minute).
var UnknownPrice = Price{}

// IsKnown reports whether the price was actually observed on the market.
func (p Price) IsKnown() bool { return p.known }

// Value returns the decimal price, and zero when unknown.
func (p Price) Value() decimal.Decimal { return p.value }

// Mul values a quantity at this price, in the reporting currency.
// An unknown price values anything at zero.
func (p Price) Mul(q Quantity, currency string) Money {
	return M(p.value.Mul(q.value), currency)
}

// Equal reports value and knowledge equality.
func (p Price) Equal(o Price) bool { return p.known == o.known && p.value.Equal(o.value) }

func (p Price) String() string {
	if !p.known {
		return "n/a"
	}
	return p.value.String()
}
