package domain

// CandidateSet collects releases for one category keyed by ID. The first value
// added for an ID wins and insertion order is preserved.
type CandidateSet struct {
	order []string
	items map[string]Release
}

// NewCandidateSet returns an empty set.
func NewCandidateSet() *CandidateSet {
	return &CandidateSet{items: make(map[string]Release)}
}

// Add inserts r unless its ID is already present. Reports whether r was added.
func (s *CandidateSet) Add(r Release) bool {
	if _, ok := s.items[r.ID]; ok {
		return false
	}
	s.items[r.ID] = r
	s.order = append(s.order, r.ID)
	return true
}

// Contains reports whether a release with id is present.
func (s *CandidateSet) Contains(id string) bool {
	_, ok := s.items[id]
	return ok
}

// Len returns the number of unique releases.
func (s *CandidateSet) Len() int {
	return len(s.order)
}

// Releases returns a copy of the releases in first-seen order.
func (s *CandidateSet) Releases() []Release {
	out := make([]Release, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}
