// Package types defines the pantry record and recipe types, the Store
// interface implemented by every table backend, configuration, and the
// typed errors shared across the pantry packages.
//
// A PantryTable is always handled as a whole: backends load the entire
// table and overwrite the entire table. There is no partial update.
package types
