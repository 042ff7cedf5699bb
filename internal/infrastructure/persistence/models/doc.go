// Package models contains the GORM persistence models. Domain entities stay
// free of ORM tags; each model converts to and from its entity with
// ToDomain and FromDomain.
//
// Line items of all five order-like documents share the document_items
// table, keyed by (owner_type, owner_id).
package models
