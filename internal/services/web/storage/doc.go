// Package storage defines the response cache contract used by web modules.
//
// Backends live in subpackages: sqlite for a single process with a local
// file and redis when several web processes share one cache.
package storage
