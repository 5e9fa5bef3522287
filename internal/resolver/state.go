package resolver

type state int

const (
	stateSearching state = iota
	stateStrongMatch
	stateExhausted
)

func (s state) String() string {
	switch s {
	case stateSearching:
		return "SEARCHING"
	case stateStrongMatch:
		return "STRONG_MATCH"
	case stateExhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

// session tracks the best candidate across queries for one release.
//
//	SEARCHING --best>=100 after a query (first-strong)--> STRONG_MATCH
//	SEARCHING --last query done---------------------------> EXHAUSTED
//
// STRONG_MATCH always accepts; EXHAUSTED accepts when best >= AcceptScore.
type session struct {
	policy      Policy
	state       state
	bestScore   int
	bestURL     string
	bestAttempt int
	found       bool
}

func newSession(policy Policy) *session {
	return &session{policy: policy, state: stateSearching}
}

// offer records a candidate. Only a strictly higher score replaces the best,
// so earlier candidates win ties.
func (s *session) offer(score int, url string, attempt int) {
	if s.state != stateSearching {
		return
	}
	if s.found && score <= s.bestScore {
		return
	}
	s.found = true
	s.bestScore = score
	s.bestURL = url
	s.bestAttempt = attempt
}

// endQuery applies the transition checked after each query.
func (s *session) endQuery(last bool) {
	if s.state != stateSearching {
		return
	}
	if s.policy == PolicyFirstStrong && s.found && s.bestScore >= StrongMatchScore {
		s.state = stateStrongMatch
		return
	}
	if last {
		s.state = stateExhausted
	}
}

func (s *session) accepted() bool {
	switch s.state {
	case stateStrongMatch:
		return true
	case stateExhausted:
		return s.found && s.bestURL != "" && s.bestScore >= AcceptScore
	default:
		return false
	}
}
