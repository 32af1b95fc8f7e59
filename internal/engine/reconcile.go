package engine

import "sort"

// IDSet is an immutable-by-convention set of device ids. Reconcile never
// mutates the set it is given and always returns freshly built collections,
// so "previous" and "new" id state can never alias each other.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given ids, ignoring duplicates.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is a member.
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Equal reports whether both sets have the same members.
func (s IDSet) Equal(other IDSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members in lexical order.
func (s IDSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Plan describes the visual changes one reconciliation cycle must apply.
// On a full rebuild every id in ToDestroy is destroyed before any id in
// ToCreate is created. Singleton regions are refreshed every cycle
// regardless of the plan, so they do not appear here.
type Plan struct {
	FullRebuild bool
	ToCreate    []string
	ToUpdate    []string
	ToDestroy   []string
}

// Reconcile compares the previously rendered id set against the device ids
// of a fresh snapshot. A nil prev means no snapshot has ever been fully
// rendered (first cycle), which always produces a full rebuild.
//
// Policy: any membership change rebuilds the whole per-device set
// (destroy all, then recreate all). Only a set that is exactly equal takes
// the in-place update path.
func Reconcile(prev IDSet, ids []string) Plan {
	// Dedupe while preserving wire order; creation order follows the
	// snapshot so the roster and the chart grid agree.
	newIDs := make([]string, 0, len(ids))
	seen := make(IDSet, len(ids))
	for _, id := range ids {
		if seen.Contains(id) {
			continue
		}
		seen[id] = struct{}{}
		newIDs = append(newIDs, id)
	}

	if prev == nil {
		return Plan{FullRebuild: true, ToCreate: newIDs}
	}

	if !prev.Equal(seen) {
		return Plan{
			FullRebuild: true,
			ToCreate:    newIDs,
			ToDestroy:   prev.Sorted(),
		}
	}

	return Plan{ToUpdate: newIDs}
}
