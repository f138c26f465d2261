package models

// WatchAlert is the result of checking a watched (not owned) symbol against
// its target price and volume conditions. Handed to the caller and dropped.
type WatchAlert struct {
	Symbol     string
	Triggered  bool
	Confidence int

	// Matched lists the signal-kind tags that contributed points, in the
	// fixed check order: near_target, volume_surge, decision, momentum.
	Matched []string

	Note string
}
