package models

// Comparison is the three-way partition of release-note tickets against tracker tickets.
// All slices are sorted and must not be modified after construction.
type Comparison struct {
	// OnlyInRelease are keys mentioned in the release notes but missing from the fix version
	OnlyInRelease []string
	// OnlyInTracker are keys in the fix version that the release notes never mention
	OnlyInTracker []string
	// Common are keys present on both sides
	Common []string
}

// HasDifferences returns true if either side has a key the other lacks
func (c Comparison) HasDifferences() bool {
	return len(c.OnlyInRelease) > 0 || len(c.OnlyInTracker) > 0
}

// Mirror swaps the two discrepancy sets
func (c Comparison) Mirror() Comparison {
	return Comparison{
		OnlyInRelease: c.OnlyInTracker,
		OnlyInTracker: c.OnlyInRelease,
		Common:        c.Common,
	}
}
