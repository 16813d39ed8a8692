// Package buffer implements the UTF-8 document model for Quill.
//
// A Buffer owns the byte store and its derived structures: the logical
// line index, the per-line grapheme cache, and an edit log that views use
// for incremental re-layout. A View projects a wrapped, scrollable
// viewport onto a buffer and answers the renderer's line-info, selection
// and measurement queries.
//
// Offsets are byte offsets, columns are terminal cells, and rows are
// 0-based. Out-of-range input is clamped, never rejected.
package buffer
