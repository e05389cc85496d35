package ballot

import "strings"

// Reason explains why an identifier was refused.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonFloatingPoint Reason = "floating points are not allowed"
	ReasonNotPositive   Reason = "only positive numbers are allowed"
	ReasonNotNumeric    Reason = "only numeric values are allowed"
)

// ValidateIdentifier decides whether raw is a positive whole number written as bare
// ASCII digits. The caller trims whitespace first. On rejection the returned Reason
// says why; on acceptance it is ReasonNone.
//
// Digits are compared as text, so there is no upper bound on the value.
func ValidateIdentifier(raw string) (Reason, bool) {
	if !allDigits(raw) {
		switch {
		case strings.ContainsAny(raw, ".,"):
			return ReasonFloatingPoint, false
		case strings.Contains(raw, "-"):
			return ReasonNotPositive, false
		default:
			return ReasonNotNumeric, false
		}
	}
	if strings.Trim(raw, "0") == "" {
		return ReasonNotPositive, false
	}
	return ReasonNone, true
}

// allDigits is false for the empty string. Only '0'-'9' count; other Unicode
// decimal digits are treated as non-numeric.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
