// Package extension compiles CUE descriptions of extra override tags into
// catalog prototypes.
//
// An extension file declares tags under a top-level "tags" struct:
//
//	tags: {
//		fsvp: {kind: "scalar", params: [{type: "int", class: "absolute_pos_y"}]}
//		jitter: {kind: "vector", params: [
//			{type: "int"},
//			{type: "int"},
//			{type: "int", optional: [3]},
//		]}
//	}
//
// Allowed kinds are scalar, toggle, text, color, alpha and vector. A param's
// class defaults to normal; optional lists the argument counts for which the
// param is present and is omitted for always-present params.
package extension
