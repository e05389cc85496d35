package main

import "strings"

// trimmed strips surrounding whitespace the way the form does before submitting.
func trimmed(s string) string {
	return strings.TrimSpace(s)
}
