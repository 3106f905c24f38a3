package session

// scoringPolicy decides when an answer is judged and what the learner may
// see while a question is answered.
type scoringPolicy struct {
	// judgeOnSelect scores at SelectOption; otherwise at Advance using the
	// captured selection.
	judgeOnSelect bool

	// revealWhileAnswered exposes correctness and explanation before FINISHED.
	revealWhileAnswered bool

	// runningScore exposes the score before FINISHED. In TEST a running
	// score would leak the previous question's correctness.
	runningScore bool
}

var policies = map[Mode]scoringPolicy{
	ModePractice: {judgeOnSelect: true, revealWhileAnswered: true, runningScore: true},
	ModeTest:     {},
}

// policyFor returns the policy for mode. Unknown modes get the TEST policy,
// which reveals nothing.
func policyFor(mode Mode) scoringPolicy {
	return policies[mode]
}
