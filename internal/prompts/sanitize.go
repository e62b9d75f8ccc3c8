package prompts

import "regexp"

// markerRe matches the opening bracket of any tag the response parsers
// treat as a section or step marker, case-insensitively.
var markerRe = regexp.MustCompile(`(?i)<(/?)(email|outreach_analysis)\b`)

// EscapeMarkers neutralizes parser marker tokens inside prospect field
// text. A field value like `<email step="1">` would otherwise collide with
// the delimiters the sequence and enhanced parsers split on; escaping the
// bracket keeps the text readable in the prompt while making a collision
// impossible.
func EscapeMarkers(s string) string {
	return markerRe.ReplaceAllString(s, `&lt;$1$2`)
}
