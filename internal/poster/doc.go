// Package poster renders the shop poster PNG from configured dimensions,
// text and assets using a deterministic draw sequence.
package poster
