package domain

// Refine applies residual predicates to a fetched page
//
// Pure and order-preserving: the result is always a subsequence of items.
// Each set predicate is ANDed. Tri-state matching is strict equality: a
// candidate whose environment flag is Unknown satisfies neither Yes nor No.
// Refine never fetches; underflow handling belongs to the session pager
func Refine(items []Candidate, res Residual) []Candidate {
	if res.Empty() {
		return items
	}
	out := make([]Candidate, 0, len(items))
	for _, c := range items {
		if res.HasPhotos && !c.HasPhotos() {
			continue
		}
		if !triMatch(res.Kids, c.Environment.Children) {
			continue
		}
		if !triMatch(res.Dogs, c.Environment.Dogs) {
			continue
		}
		if !triMatch(res.Cats, c.Environment.Cats) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// triMatch applies one tri-state predicate; an unset predicate always passes
func triMatch(want, have TriState) bool {
	if !want.Set() {
		return true
	}
	return want == have
}
