// Package analysis provides the level and phase meters shown by the
// monitoring display. The meters work on whole frames and are safe to read
// from a goroutine other than the one feeding them.
package analysis
