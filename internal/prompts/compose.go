package prompts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// promptFile is the embedded document holding all outreach templates.
const promptFile = "outreach.json"

// DefaultSequenceSteps is used when a sequence compose does not specify a
// step count.
const DefaultSequenceSteps = 3

// Defaults for the optional enhanced-mode fields.
const (
	defaultIndustry = "Technology"
	defaultTitle    = "Decision Maker"
)

// Options adjusts prompt composition beyond the mode itself.
type Options struct {
	// Style selects a named writing style for standard mode. Empty means
	// the default instruction block; other modes ignore it.
	Style string

	// Tone and Length carry the email.tone / email.length config values as
	// free-form guidance appended to the payload.
	Tone   string
	Length string

	// Steps is the number of emails in a sequence. Zero means
	// DefaultSequenceSteps.
	Steps int

	// DynamicTemplate replaces the embedded dynamic block. It is verified
	// against the known placeholder set before use.
	DynamicTemplate string
}

// fieldValues is the closed placeholder -> prospect field mapping. Adding
// a placeholder to a template requires adding its resolver here; there is
// no reflective fallback.
var fieldValues = map[string]func(*types.Prospect) string{
	"FirstName":      func(p *types.Prospect) string { return p.FirstName },
	"LastName":       func(p *types.Prospect) string { return p.LastName },
	"CompanyName":    func(p *types.Prospect) string { return p.CompanyName },
	"CompanyWebsite": func(p *types.Prospect) string { return p.CompanyWebsite },
	"Activity":       func(p *types.Prospect) string { return p.Activity },
	"LinkedInURL":    func(p *types.Prospect) string { return p.LinkedInURL },
	"CaseStudy":      func(p *types.Prospect) string { return p.CaseStudy },
	"ICP":            func(p *types.Prospect) string { return p.ICP },
	"SenderName":     func(p *types.Prospect) string { return p.SenderName },
	"SenderTitle":    func(p *types.Prospect) string { return p.SenderTitle },
	"SenderCompany":  func(p *types.Prospect) string { return p.SenderCompany },
	"OurWebsite":     func(p *types.Prospect) string { return p.OurWebsite },
	"MeetingLink":    func(p *types.Prospect) string { return p.MeetingLink },
	"Industry": func(p *types.Prospect) string {
		if p.Industry == "" {
			return defaultIndustry
		}
		return p.Industry
	},
	"Title": func(p *types.Prospect) string {
		if p.Title == "" {
			return defaultTitle
		}
		return p.Title
	},
}

// PlaceholderNames lists every placeholder a custom template may
// reference, sorted.
func PlaceholderNames() []string {
	names := make([]string, 0, len(fieldValues))
	for name := range fieldValues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VerifyTemplate checks that every placeholder a template references is in
// the known set. Used to validate user-supplied template files before they
// replace the embedded dynamic block.
func VerifyTemplate(template string) error {
	for _, name := range Placeholders(template) {
		if _, ok := fieldValues[name]; !ok {
			return &UnknownPlaceholderError{Placeholder: name}
		}
	}
	return nil
}

// Compose builds the full prompt payload for one generation: the
// mode-specific instruction block, the substituted dynamic block, and any
// mode suffix, joined in fixed order. Field text is marker-escaped before
// substitution. Deterministic: identical inputs yield identical payloads.
func Compose(mode types.Mode, prospect *types.Prospect, opts Options) (string, error) {
	static, err := staticBlock(mode, opts)
	if err != nil {
		return "", err
	}

	dynamic, err := dynamicBlock(mode, opts)
	if err != nil {
		return "", err
	}

	rendered, err := substitute(dynamic, prospect)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(static)
	sb.WriteString("\n\n")
	sb.WriteString(rendered)

	switch mode {
	case types.ModeEnhanced:
		sb.WriteString("\n\n")
		sb.WriteString(MustGet(promptFile, "analysis-suffix"))
	case types.ModeSequence:
		steps := opts.Steps
		if steps <= 0 {
			steps = DefaultSequenceSteps
		}
		sb.WriteString("\n\n")
		sb.WriteString(Format(MustGet(promptFile, "sequence-suffix"), map[string]string{
			"Steps": strconv.Itoa(steps),
		}))
	}

	if guidance := toneGuidance(opts); guidance != "" {
		sb.WriteString("\n\n")
		sb.WriteString(guidance)
	}

	if opts.Style != "" && mode == types.ModeStandard {
		sb.WriteString("\n\n")
		sb.WriteString(MustGet(promptFile, "style-output-suffix"))
	}

	return sb.String(), nil
}

// staticBlock picks the instruction block for a mode. A selected style
// replaces the standard instructions entirely; enhanced and sequence
// modes carry their own instruction blocks and ignore the style, so a
// configured default style never breaks them.
func staticBlock(mode types.Mode, opts Options) (string, error) {
	if opts.Style != "" && mode == types.ModeStandard {
		style, err := StyleByName(opts.Style)
		if err != nil {
			return "", err
		}
		return style.Instructions, nil
	}

	switch mode {
	case types.ModeStandard:
		return MustGet(promptFile, "standard-instructions"), nil
	case types.ModeEnhanced:
		return MustGet(promptFile, "enhanced-instructions"), nil
	case types.ModeSequence:
		return MustGet(promptFile, "sequence-instructions"), nil
	default:
		return "", fmt.Errorf("unknown mode %q", mode)
	}
}

// dynamicBlock picks the prospect-data template, honoring a verified
// custom override.
func dynamicBlock(mode types.Mode, opts Options) (string, error) {
	if opts.DynamicTemplate != "" {
		if err := VerifyTemplate(opts.DynamicTemplate); err != nil {
			return "", err
		}
		return opts.DynamicTemplate, nil
	}
	if mode == types.ModeEnhanced {
		return MustGet(promptFile, "enhanced-dynamic-prompt"), nil
	}
	return MustGet(promptFile, "dynamic-prompt"), nil
}

// substitute resolves every placeholder the template references against
// the prospect, failing on the first one with no value. Resolved text is
// marker-escaped so field content can never collide with parser
// delimiters.
func substitute(template string, prospect *types.Prospect) (string, error) {
	names := Placeholders(template)
	data := make(map[string]string, len(names))
	for _, name := range names {
		resolve, ok := fieldValues[name]
		if !ok {
			return "", &UnknownPlaceholderError{Placeholder: name}
		}
		value := strings.TrimSpace(resolve(prospect))
		if value == "" {
			return "", &MissingFieldError{Placeholder: name}
		}
		data[name] = EscapeMarkers(value)
	}
	return Format(template, data), nil
}

// toneGuidance renders the optional tone/length configuration as appended
// guidance lines.
func toneGuidance(opts Options) string {
	var lines []string
	if opts.Tone != "" {
		lines = append(lines, "Tone: "+opts.Tone)
	}
	if opts.Length != "" {
		lines = append(lines, "Length: "+opts.Length)
	}
	if len(lines) == 0 {
		return ""
	}
	return "ADDITIONAL GUIDANCE:\n" + strings.Join(lines, "\n")
}
