// Package ballot holds the vote-casting core: the fixed candidate list, identifier
// validation, and the Recorder that turns a submission into an Outcome.
// It has no knowledge of any terminal or form code.
package ballot

// Candidate is one of the fixed labels a voter can choose.
type Candidate string

const (
	Eminem       Candidate = "Eminem"
	TaylorSwift  Candidate = "Taylor Swift"
	MorganWallen Candidate = "Morgan Wallen"

	// NoCandidate is what the form passes when nothing is selected.
	NoCandidate Candidate = ""
)

// Candidates lists the ballot in display order.
var Candidates = []Candidate{Eminem, TaylorSwift, MorganWallen}

// Valid reports whether c is on the ballot.
func (c Candidate) Valid() bool {
	for _, known := range Candidates {
		if c == known {
			return true
		}
	}
	return false
}

func (c Candidate) String() string { return string(c) }

// ParseCandidate matches name against the ballot labels exactly.
func ParseCandidate(name string) (Candidate, bool) {
	c := Candidate(name)
	if !c.Valid() {
		return NoCandidate, false
	}
	return c, true
}
