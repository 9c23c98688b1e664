// Package docstore keeps agenda events in a MongoDB collection, as an
// alternative to the relational store.
package docstore
