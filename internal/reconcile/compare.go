package reconcile

import (
	"github.com/wahlandcase/attuned.relnotes/internal/models"
	"github.com/wahlandcase/attuned.relnotes/internal/tickets"
)

// Compare partitions the union of both ticket sets. Duplicates in either
// input are ignored and every output slice is sorted.
func Compare(release, tracker []string) models.Comparison {
	releaseSet := toSet(release)
	trackerSet := toSet(tracker)

	onlyRelease := make(map[string]bool)
	onlyTracker := make(map[string]bool)
	common := make(map[string]bool)

	for key := range releaseSet {
		if trackerSet[key] {
			common[key] = true
		} else {
			onlyRelease[key] = true
		}
	}
	for key := range trackerSet {
		if !releaseSet[key] {
			onlyTracker[key] = true
		}
	}

	return models.Comparison{
		OnlyInRelease: tickets.SortedKeys(onlyRelease),
		OnlyInTracker: tickets.SortedKeys(onlyTracker),
		Common:        tickets.SortedKeys(common),
	}
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set
}
