package repository

import "shanenterprises/models"

// The depot and FOL syncs are replace-entire-set operations: the new
// payload always defines the complete linked set for the bill, and
// anything currently linked but omitted is unlinked. The set math lives
// here, away from the SQL, so the replace semantics are testable on
// their own.

// unlinkSet returns the ids linked now but absent from next.
func unlinkSet(current, next []int64) []int64 {
	keep := map[int64]bool{}
	for _, id := range next {
		keep[id] = true
	}
	var out []int64
	for _, id := range current {
		if !keep[id] {
			out = append(out, id)
		}
	}
	return out
}

// dedupeIDs preserves first-seen order. Linking is idempotent, so a
// repeated id in the payload is harmless but only processed once.
func dedupeIDs(ids []int64) []int64 {
	seen := map[int64]bool{}
	var out []int64
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// folEntryIDs collects every destination entry referenced by the FOL
// payload's slab destinations, merged rows included.
func folEntryIDs(p *models.FOLPayload) []int64 {
	var ids []int64
	for _, slab := range p.Slabs {
		for _, d := range slab.Destinations {
			ids = append(ids, d.DestinationEntryIDs...)
		}
	}
	return dedupeIDs(ids)
}
