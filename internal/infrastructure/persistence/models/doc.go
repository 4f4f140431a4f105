// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Each model carries its table mapping and a pair of mappers:
// ToDomain builds the domain value and FromDomain (or a *ModelFromDomain
// constructor) populates the model before a write.
//
// Structure:
//   - base.go: BaseModel shared by uuid-keyed tables
//   - pricing.go: product prices, promotions and volume discount rules
//   - tier.go: customer tier assignments and their history
package models
