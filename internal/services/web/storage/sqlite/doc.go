// Package sqlite implements the response cache on a local SQLite file.
package sqlite
