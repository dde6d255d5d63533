package errors

import (
	"regexp"
	"strconv"
)

// Compiler diagnostics do not always arrive with a structured location; some
// surface only as text like "button.tsx:3:7: Unexpected token" or
// "ERROR: 12:4 expected ...". These patterns pull a line/column pair out of
// the message when one is present.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`:(\d+):(\d+)`),
	regexp.MustCompile(`\bline (\d+), column (\d+)`),
	regexp.MustCompile(`\((\d+),(\d+)\)`),
}

// ExtractLocation parses a line/column location out of an error message.
// It returns ok=false when no pattern matches.
func ExtractLocation(message string) (line, column int, ok bool) {
	for _, pattern := range locationPatterns {
		matches := pattern.FindStringSubmatch(message)
		if matches == nil {
			continue
		}
		line, _ = strconv.Atoi(matches[1])
		column, _ = strconv.Atoi(matches[2])
		if line > 0 {
			return line, column, true
		}
	}
	return 0, 0, false
}
