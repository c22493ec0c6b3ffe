// Package pantry implements the expiration filter, the pantry mutator, and
// the Service that runs each user-facing operation against a Store.
//
// FilterExpiring and AddItem are pure. Service re-reads the store at the
// start of every operation and keeps no table between calls.
package pantry
