// Package catalog holds the registry of ASS override tag prototypes.
//
// A Prototype describes one argument shape for a tag name: the ordered
// parameters, their variable types, their semantic classification, and the
// argument counts for which each parameter is present. Several prototypes may
// share a name (\fad with 2 or 7 arguments, \clip as a rectangle or a drawing).
//
// A Catalog is immutable once built. Default returns the built-in catalog,
// constructed exactly once; Extend derives a new catalog with extra prototypes
// and leaves the receiver untouched. Concurrent readers are safe.
package catalog
