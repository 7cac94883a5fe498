// Package types defines the Store interface, the TestCase entity and its
// closed Priority and Status types, and the standard errors shared by the
// storage backend and the tcm command line.
package types
