// Package storage reads and writes the files a namesake dataset is made of:
// the catalog, the custom alias store, the rejection ledger, candidate pairs
// and name lists.
//
// Every write replaces the whole file through a temporary file and a rename
// in the same directory, so a crash leaves either the old or the new content.
// Mutating commands hold an advisory lock on the data directory for the
// duration of a run.
package storage
