// Package transcript defines the canonical transcript interchange format,
// assembles per-chunk recognition text into timed word items with synthetic
// speaker segments, and merges speaker-labelled items into readable lines.
package transcript
