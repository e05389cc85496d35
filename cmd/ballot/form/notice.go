package form

import (
	"fmt"
	"strings"
	"unicode"

	"ballotbox/internal/ballot"
)

// NoticeKind says how a notice is shown: as a dialog or as the inline line under the form.
type NoticeKind int

const (
	NoticeInline NoticeKind = iota
	NoticeInfo
	NoticeError
)

// Notice is the user-facing rendering of one submission result.
type Notice struct {
	Kind  NoticeKind
	Title string
	Text  string
}

const (
	TitleRecorded     = "Vote Recorded"
	TitleDuplicate    = "Duplicate Identifier"
	TitleStorageError = "Storage Error"

	DuplicateText       = "This identifier has already been used."
	SelectCandidateText = "Select a candidate"
)

// Describe maps an Outcome to what the voter sees.
func Describe(out ballot.Outcome) Notice {
	switch out.Kind {
	case ballot.OutcomeAccepted:
		return Notice{
			Kind:  NoticeInfo,
			Title: TitleRecorded,
			Text:  fmt.Sprintf("Voted for %s as best artist", out.Candidate),
		}
	case ballot.OutcomeDuplicate:
		return Notice{Kind: NoticeError, Title: TitleDuplicate, Text: DuplicateText}
	case ballot.OutcomeInvalidIdentifier:
		return Notice{Kind: NoticeInline, Text: ReasonText(out.Reason)}
	default:
		return Notice{Kind: NoticeInline, Text: SelectCandidateText}
	}
}

// DescribeError renders a storage failure.
func DescribeError(err error) Notice {
	return Notice{Kind: NoticeError, Title: TitleStorageError, Text: err.Error()}
}

// ReasonText turns a rejection reason into a sentence: "Floating points are not allowed."
func ReasonText(r ballot.Reason) string {
	s := string(r)
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	s = string(runes)
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}
