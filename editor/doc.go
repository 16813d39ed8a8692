// Package editor provides the editable layer over the buffer package: an
// EditBuffer that couples mutations with cursor state, and a Bubble Tea
// component that renders it with selection, placeholder and tab-indicator
// styling.
//
// The package is responsible for cursor invariants (grapheme-boundary
// positions, goal-column vertical movement, line merging on deletes) and
// for host integration; all text geometry comes from the buffer package.
package editor
