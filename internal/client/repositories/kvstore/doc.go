// Package kvstore persists raw key/value blobs in one table of the local
// SQLite store. Values are stored as given; sealing is the caller's job.
package kvstore
