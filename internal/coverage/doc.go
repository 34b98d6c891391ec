// Package coverage correlates runtime execution events with parsed script
// batches and maps character offsets to line and column positions.
package coverage
