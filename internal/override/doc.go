// Package override parses and re-serializes ASS override tag blocks.
//
// A block is the body of one {...} span in dialogue text, for example
// `\pos(100,200)\fad(100,200)\t(0,300,\fscx120)`. The Parser matches each
// backslash against the longest tag name in a catalog.Catalog, splits the
// arguments, binds them to the first prototype whose shape fits, and yields
// a typed Tag. Anything the catalog does not describe becomes an Unknown tag
// that reproduces its text exactly.
//
// Parameters keep the raw argument text. Typed accessors are lenient:
// malformed numbers read as 0. Colors are the exception and return an error.
// Scripting placeholders such as $sstart or !$sdur*0.3! are never evaluated
// and survive a round trip byte for byte.
//
// \t is the only recursive tag: its last parameter is itself a Block.
package override
