// Package quality applies heuristic checks to generated outreach emails:
// length, personalization, call-to-action presence, and spam risk.
package quality

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

const (
	// Word-count sweet spot for cold outreach.
	minRecommendedWords = 50
	maxRecommendedWords = 125

	// Hard ceiling beyond which a shorten recommendation is always added.
	maxWords = 150

	// Subject lines longer than this get truncated in most inboxes.
	maxSubjectLength = 60
)

// Common spam-trigger words. One hit is tolerable; several push the email
// toward filters.
var spamWords = []string{
	"urgent", "limited time", "act now", "guaranteed", "free money",
	"winner", "congratulations", "cash", "investment", "loan",
}

// ctaPatterns match the ways a cold email typically asks for a meeting.
var ctaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)book.*time`),
	regexp.MustCompile(`(?i)schedule.*(meeting|call|chat)`),
	regexp.MustCompile(`(?i)calendly`),
	regexp.MustCompile(`(?i)\bdemo\b`),
	regexp.MustCompile(`(?i)call.*discuss`),
	regexp.MustCompile(`(?i)time.*(chat|talk|connect)`),
	regexp.MustCompile(`(?i)meeting.*link`),
	regexp.MustCompile(`(?i)worth.*(call|chat|minutes)`),
}

// Analyze runs every heuristic over a generated email and returns the
// combined signals with improvement recommendations. The prospect is
// optional; without it personalization falls back to a greeting check.
func Analyze(subject, body string, prospect *types.Prospect) *types.EmailAnalysis {
	words := strings.Fields(body)

	analysis := &types.EmailAnalysis{
		WordCount:       len(words),
		SubjectLength:   len(subject),
		Personalization: checkPersonalization(body, prospect),
		HasCallToAction: checkCallToAction(body),
		SpamRisk:        assessSpamRisk(subject + " " + body),
	}
	analysis.Recommendations = recommendations(analysis)
	return analysis
}

// checkPersonalization reports whether the body references the prospect
// by name, company, or industry. Without prospect data a greeting that
// names someone counts.
func checkPersonalization(body string, prospect *types.Prospect) bool {
	if prospect != nil {
		if prospect.FirstName != "" && strings.Contains(body, prospect.FirstName) {
			return true
		}
		if prospect.CompanyName != "" && strings.Contains(body, prospect.CompanyName) {
			return true
		}
		if prospect.Industry != "" && strings.Contains(body, prospect.Industry) {
			return true
		}
		return false
	}

	// Greeting followed by a name, e.g. "Hi Jane," / "Hey Sam!".
	greetingRe := regexp.MustCompile(`(?im)^(hi|hey|hello|dear)\s+\pL+[,!]`)
	return greetingRe.MatchString(body)
}

// checkCallToAction reports whether any known meeting-ask pattern appears.
func checkCallToAction(body string) bool {
	for _, re := range ctaPatterns {
		if re.MatchString(body) {
			return true
		}
	}
	return false
}

// assessSpamRisk tiers the email by spam-trigger word count.
func assessSpamRisk(content string) string {
	lower := strings.ToLower(content)
	count := 0
	for _, w := range spamWords {
		if strings.Contains(lower, w) {
			count++
		}
	}
	switch {
	case count == 0:
		return "Low"
	case count <= 2:
		return "Medium"
	default:
		return "High"
	}
}

// recommendations derives improvement suggestions from the signals.
func recommendations(a *types.EmailAnalysis) []string {
	var recs []string

	switch {
	case a.WordCount > maxWords:
		recs = append(recs, fmt.Sprintf("Shorten the email to under %d words", maxWords))
	case a.WordCount > maxRecommendedWords:
		recs = append(recs, fmt.Sprintf("Consider tightening to %d-%d words for best response rates", minRecommendedWords, maxRecommendedWords))
	case a.WordCount > 0 && a.WordCount < minRecommendedWords:
		recs = append(recs, "Email may be too short to establish relevance")
	}

	if a.SubjectLength > maxSubjectLength {
		recs = append(recs, fmt.Sprintf("Shorten the subject line to under %d characters", maxSubjectLength))
	}
	if a.SubjectLength == 0 {
		recs = append(recs, "Add a subject line")
	}

	if !a.HasCallToAction {
		recs = append(recs, "Add a clear call to action")
	}
	if !a.Personalization {
		recs = append(recs, "Add personalization elements (name, company, or industry)")
	}
	if a.SpamRisk != "Low" {
		recs = append(recs, "Remove spam-trigger words to improve deliverability")
	}

	return recs
}
