// Package types defines the Cupboard and Table interfaces, the entity types,
// the filter language, and the standard error types for the roster data layer.
//
// Four collections are exposed: users, profiles, posts, and member types.
// Referential integrity between them is not enforced here; see
// internal/rules for the relationship and cascade logic built on top of
// these interfaces.
package types
