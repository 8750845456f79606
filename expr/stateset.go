package expr

import "sort"

// StateSet is a sorted, deduplicated slice of StateIDs. Sets stay small
// in practice (bounded by pattern size), so a sorted slice outperforms
// a map both in memory and in the hash-consing comparisons the dfa
// package does during subset construction.
type StateSet []StateID

// Add inserts s into the set, keeping it sorted and unique. Returns the
// (possibly reallocated) set.
func (ss StateSet) Add(s StateID) StateSet {
	i := sort.Search(len(ss), func(i int) bool { return ss[i] >= s })
	if i < len(ss) && ss[i] == s {
		return ss
	}
	ss = append(ss, 0)
	copy(ss[i+1:], ss[i:])
	ss[i] = s
	return ss
}

// Contains reports whether s is a member.
func (ss StateSet) Contains(s StateID) bool {
	i := sort.Search(len(ss), func(i int) bool { return ss[i] >= s })
	return i < len(ss) && ss[i] == s
}

// Union returns the sorted union of a and b, allocating a fresh slice.
func Union(a, b StateSet) StateSet {
	out := make(StateSet, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// UnionInto merges src into dst (kept sorted+unique), returning the
// updated slice. Used while accumulating a state's follow set.
func UnionInto(dst, src StateSet) StateSet {
	if len(dst) == 0 {
		out := make(StateSet, len(src))
		copy(out, src)
		return out
	}
	return Union(dst, src)
}
