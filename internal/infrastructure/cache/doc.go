// Package cache holds short-lived per-user state kept outside the relational
// store, currently the sale form drafts.
package cache
