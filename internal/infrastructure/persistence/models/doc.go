// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns. Each model converts to and from its domain type with
// ToDomain and FromDomain; repositories only ever hand domain values out.
//
// Times are stored in UTC.
package models
