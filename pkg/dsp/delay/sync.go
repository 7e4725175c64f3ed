package delay

import "math"

// SyncSteps is the number of tempo-synced delay divisions.
const SyncSteps = 16

// Note lengths in beats, shortest first. Dotted values divide by 1.5,
// triplet values multiply by 4/3.
var syncMultipliers = [SyncSteps]float64{
	0.125 / 4,
	0.25 / 4,
	0.5 / 4,
	(1.0 / 1.5) / 4,
	1.0 / 4,
	(2.0 / 1.5) / 4,
	2.0 / 4,
	(4.0 / 1.5) / 4,
	4.0 / 4,
	(4.0 * 4.0 / 3.0) / 4,
	8.0 / 4,
	(8.0 * 4.0 / 3.0) / 4,
	16.0 / 4,
	(16.0 * 4.0 / 3.0) / 4,
	32.0 / 4,
	(32.0 * 4.0 / 3.0) / 4,
}

// defaultSyncMultiplier is used for out of range steps.
const defaultSyncMultiplier = 1.0 / 4

// SyncMultiplier returns the tempo multiplier for a sync step.
func SyncMultiplier(step int) float64 {
	if step < 0 || step >= SyncSteps {
		return defaultSyncMultiplier
	}
	return syncMultipliers[step]
}

// SyncStep maps the normalized sync control onto a step. Turning the
// control up selects shorter echoes. A fully open control yields -1,
// which selects the default multiplier.
func SyncStep(v float64) int {
	return int(math.Round(SyncSteps*(1-v))) - 1
}
