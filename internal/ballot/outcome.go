package ballot

// OutcomeKind tags the result of a submission.
type OutcomeKind int

const (
	OutcomeAccepted OutcomeKind = iota
	OutcomeInvalidIdentifier
	OutcomeDuplicate
	OutcomeNoCandidate
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeInvalidIdentifier:
		return "invalid_identifier"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeNoCandidate:
		return "no_candidate"
	default:
		return "unknown"
	}
}

// Outcome is what a submission produced. Candidate is set only for accepted votes,
// Reason only for invalid identifiers.
type Outcome struct {
	Kind      OutcomeKind
	Candidate Candidate
	Reason    Reason
}

// Accepted reports a recorded vote for c.
func Accepted(c Candidate) Outcome {
	return Outcome{Kind: OutcomeAccepted, Candidate: c}
}

// InvalidIdentifier reports an identifier the validator refused.
func InvalidIdentifier(r Reason) Outcome {
	return Outcome{Kind: OutcomeInvalidIdentifier, Reason: r}
}

// Duplicate reports an identifier that has already voted.
func Duplicate() Outcome {
	return Outcome{Kind: OutcomeDuplicate}
}

// NoCandidateOutcome reports a submission with nothing selected.
func NoCandidateOutcome() Outcome {
	return Outcome{Kind: OutcomeNoCandidate}
}

// IsAccepted is a shorthand for Kind == OutcomeAccepted.
func (o Outcome) IsAccepted() bool { return o.Kind == OutcomeAccepted }
