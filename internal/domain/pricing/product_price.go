package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the only currency the pricing engine deals in.
const Currency = "RON"

// VATRate is applied to the post-discount order subtotal.
// Labelled as Romanian VAT; the standard Romanian rate is 19%, so this
// value needs confirmation from finance before it is changed.
var VATRate = decimal.RequireFromString("0.21")

var hundred = decimal.NewFromInt(100)

// ProductPrice is the undiscounted price record of a product
type ProductPrice struct {
	ProductID   int64
	Price       decimal.Decimal
	Cost        *decimal.Decimal
	Currency    string
	LastUpdated time.Time
}

// NewProductPrice creates a product price stamped at the given time
func NewProductPrice(productID int64, price decimal.Decimal, cost *decimal.Decimal, at time.Time) (*ProductPrice, error) {
	if productID <= 0 {
		return nil, NewPricingError("product id must be positive")
	}
	if !price.IsPositive() {
		return nil, NewPricingError("price must be greater than zero")
	}
	if cost != nil && cost.IsNegative() {
		return nil, NewPricingError("cost cannot be negative")
	}
	return &ProductPrice{
		ProductID:   productID,
		Price:       price,
		Cost:        cost,
		Currency:    Currency,
		LastUpdated: at,
	}, nil
}

// HasCost returns true if a cost is recorded for the product
func (p *ProductPrice) HasCost() bool {
	return p.Cost != nil
}
