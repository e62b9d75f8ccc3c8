package prompts

import (
	"fmt"
	"strings"
)

// Style is a named email writing approach. Instructions replace the
// standard instruction block when a style is selected.
type Style struct {
	Name           string `json:"name"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Instructions   string `json:"-"`
	ExampleSubject string `json:"example_subject"`
}

// styles holds the available styles in display order.
var styles = []Style{
	{
		Name:           "professional",
		Title:          "Professional Problem-Solution",
		Description:    "Classic B2B approach. Clear value prop, professional tone, structured format.",
		ExampleSubject: "Scaling Your AI Consulting Pipeline",
		Instructions: `You are an exceptional sales development representative creating professional outreach emails.

TONE & STRUCTURE:
- Professional but personable
- Clear problem, solution, benefit structure
- Proper capitalization and punctuation
- 100-150 words maximum
- Formal subject lines that create curiosity

FORMAT:
- Greeting: "Hi [Name]" or "Dear [Name]"
- Hook: Reference their company, role, or recent activity
- Problem: Identify a challenge they likely face
- Solution: How we solve it, with case study proof
- CTA: Clear meeting request
- Professional sign-off`,
	},
	{
		Name:           "pattern_interrupt",
		Title:          "Pattern Interrupt",
		Description:    "Modern style. Lowercase, curiosity gaps, peer proof, mobile-optimized.",
		ExampleSubject: "quick q about your recent exit",
		Instructions: `You write outbound emails that break through noise using pattern interrupts and curiosity.

PRINCIPLES:
- All lowercase, subject and body
- Pattern interrupts: "weird question", "quick q", "random but"
- Mobile-first: short lines, no paragraphs
- Specific numbers ("47%") instead of vague claims ("many")
- Time specificity: "12 min tuesday" not "15 minutes"
- Peer proof: name the peer group, not "many clients"

PSYCHOLOGY:
- Start with "noticed" plus ONE specific thing
- Create curiosity gaps; do not explain everything
- PS line: short callback to something they said

FORMAT:
- No formal greeting, jump right in
- Two or three word sentences are fine
- Lots of line breaks
- Casual sign-off, just the name

AVOID:
- Capital letters except names and acronyms
- Corporate speak
- Multiple paragraphs
- Explaining your solution`,
	},
	{
		Name:           "casual_conversational",
		Title:          "Casual Conversational",
		Description:    "Friendly peer-to-peer tone. Like texting a colleague you respect.",
		ExampleSubject: "Loved your take on outbound",
		Instructions: `Write like you're reaching out to a peer you admire. Casual but respectful.

TONE:
- Conversational, like a Slack DM
- Use contractions (you're, I've, didn't)
- Natural enthusiasm without being salesy
- 80-120 words max

STRUCTURE:
- Start with "Hey [Name]" or just "[Name],"
- Personal observation or genuine compliment
- Relatable problem or question
- How we're solving it plus quick proof
- Soft CTA: "Interested?" "Want to chat?"

PERSONALITY:
- Show genuine interest in their work
- Be humble about your solution
- Use "we" and "us", not "I"`,
	},
	{
		Name:           "value_first",
		Title:          "Value-First Insight",
		Description:    "Lead with valuable insight or data. Position as helpful expert sharing knowledge.",
		ExampleSubject: "87% of AI consultants miss this pricing opportunity",
		Instructions: `Lead with value. Share an insight that makes them think differently about their business.

APPROACH:
- Start with a valuable insight or data point
- Connect the insight to their specific situation
- Soft pitch at the end, almost optional
- Position as expert helping expert
- 100-130 words

STRUCTURE:
- Subject: the insight itself
- Opening: jump straight into the insight
- Context: why this matters for them specifically
- Proof: quick case study or metric
- Soft CTA: "Happy to share more"

TONE:
- Authoritative but not condescending
- Generous with knowledge
- Focus on their success`,
	},
	{
		Name:           "challenge_based",
		Title:          "Challenge-Based",
		Description:    "Open with a challenging question or statement. Provocative but respectful.",
		ExampleSubject: "Is your expertise worth 10x more than you're charging?",
		Instructions: `Start with a respectful challenge that makes them think. Thought-provoking, never aggressive.

CHALLENGE TYPES:
- Question an assumption
- Point out a missed opportunity
- Highlight a competitive gap
- Present surprising data

TONE:
- Confident but not arrogant
- Data-driven points
- Peer-to-peer dynamic
- 90-120 words

STRUCTURE:
- Subject: the challenge itself
- Opening: direct challenge or question
- Context: why this matters now
- Proof: data or peer example
- CTA: "Let's discuss" / "Thoughts?"`,
	},
}

// Styles returns the available styles in display order.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// StyleNames returns the style identifiers in display order.
func StyleNames() []string {
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.Name
	}
	return names
}

// StyleByName looks up a style by identifier.
func StyleByName(name string) (Style, error) {
	for _, s := range styles {
		if s.Name == name {
			return s, nil
		}
	}
	return Style{}, fmt.Errorf("unknown email style %q (available: %s)", name, strings.Join(StyleNames(), ", "))
}
