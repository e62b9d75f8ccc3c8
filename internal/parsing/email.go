// Package parsing extracts structured email content from raw model
// output. Parsers are pure: they never perform I/O and always retain the
// raw text alongside whatever they extract.
package parsing

import (
	"regexp"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

var (
	// subjectRe finds the subject line; anchored to a line start so body
	// text that merely mentions "Subject:" mid-sentence is not mistaken
	// for the marker.
	subjectRe = regexp.MustCompile(`(?m)^[ \t]*Subject:[ \t]*(.+)$`)

	// analysisRe soft-extracts the enhanced-mode analysis block.
	analysisRe = regexp.MustCompile(`(?s)<outreach_analysis>(.*?)</outreach_analysis>`)

	// emailBlockRe extracts the enhanced-mode email envelope. The literal
	// `<email>` never matches step-numbered sequence markers.
	emailBlockRe = regexp.MustCompile(`(?s)<email>\s*(.*?)\s*</email>`)

	// fenceRe strips a surrounding markdown code fence some models wrap
	// their whole answer in.
	fenceRe = regexp.MustCompile("(?s)\\A```[a-zA-Z]*\\n(.*?)\\n?```\\z")
)

// ParseEmail extracts a single email from raw model output. A missing
// subject marker degrades gracefully: the whole text becomes the body and
// the subject stays empty. Only a completely empty response is an error.
func ParseEmail(mode types.Mode, rawText string) (*types.EmailResult, error) {
	text := normalize(rawText)
	if text == "" {
		return nil, &ParseError{Message: "model returned an empty response"}
	}

	result := &types.EmailResult{RawText: rawText}

	if mode == types.ModeEnhanced {
		if m := analysisRe.FindStringSubmatch(text); m != nil {
			result.Analysis = strings.TrimSpace(m[1])
			text = strings.TrimSpace(analysisRe.ReplaceAllString(text, ""))
		}
		if m := emailBlockRe.FindStringSubmatch(text); m != nil {
			text = m[1]
		}
		if text == "" {
			return nil, &ParseError{Message: "enhanced response contained no email content"}
		}
	}

	result.Subject, result.Body = splitSubject(text)
	return result, nil
}

// splitSubject separates the subject line from the body. Without a
// subject marker the entire text is the body.
func splitSubject(text string) (subject, body string) {
	loc := subjectRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", strings.TrimSpace(text)
	}

	subject = strings.TrimSpace(text[loc[2]:loc[3]])
	body = strings.TrimSpace(text[loc[1]:])
	return subject, body
}

// normalize trims whitespace and removes a wrapping code fence.
func normalize(rawText string) string {
	text := strings.TrimSpace(rawText)
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		text = strings.TrimSpace(m[1])
	}
	return text
}
