// Package mapper turns RackTables rows into Device42 payloads.
package mapper

import (
	"strings"
	"unicode/utf8"
)

// RackTables encodes literal separators in dictionary values with these
// in-band markers.
const (
	tokenPass = "%GPASS%"
	tokenSkip = "%GSKIP%"
)

const (
	MaxModelName    = 48
	MaxPDUModelName = 64
	MaxRowName      = 10
	MaxPortType     = 12
)

var placeholderReplacer = strings.NewReplacer(tokenPass, " ", tokenSkip, " ")

var hardwareReplacer = strings.NewReplacer(tokenPass, " ", tokenSkip, " ", "\t", " ")

var notesReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "&lt;", "", "&gt;", "")

// StripPlaceholders replaces the placeholder tokens with spaces.
func StripPlaceholders(s string) string {
	return strings.TrimSpace(placeholderReplacer.Replace(s))
}

// CleanHardware is StripPlaceholders that also turns tabs into spaces.
func CleanHardware(s string) string {
	return strings.TrimSpace(hardwareReplacer.Replace(s))
}

// CleanNotes collapses newlines and drops escaped angle brackets.
func CleanNotes(s string) string {
	return strings.TrimSpace(notesReplacer.Replace(s))
}

// Truncate cuts s to at most n characters.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
