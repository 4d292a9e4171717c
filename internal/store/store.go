// Package store implements the persisted expense and debt collections.
//
// Each store exclusively owns its in-memory collection and synchronizes
// every mutation to durable storage before reflecting it to readers:
// the whole collection is re-serialized under a fixed key on each
// change. A mutation whose durable write fails leaves the in-memory
// state untouched and returns the error, so readers never observe
// state that would not survive a restart.
package store

import "errors"

// ErrNotFound is returned when an operation targets an id that is not
// in the collection. The collection is never modified on a miss, so
// repeating a failed Delete leaves state unchanged.
var ErrNotFound = errors.New("store: record not found")
