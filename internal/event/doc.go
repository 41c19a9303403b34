// Package event models a dialogue line's text and timing, and splits the
// text into plain, comment, drawing and override blocks.
package event
