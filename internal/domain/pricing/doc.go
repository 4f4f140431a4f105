// Package pricing contains the pricing domain: base product prices,
// time-bounded promotions, quantity-based volume discount rules and the
// fixed customer tier catalog, together with the repository ports the
// application layer queries.
//
// Monetary values and ratios are decimal.Decimal. Ratios are fractions
// (0.15 means 15%). Currency is always RON.
package pricing
