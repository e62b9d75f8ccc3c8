package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// stepRe matches one step block. Markers are anchored to line starts so
// escaped marker text inside a body can never open or close a step.
var stepRe = regexp.MustCompile(`(?ms)^[ \t]*<email step="(\d+)">[ \t]*\r?\n\s*Subject:[ \t]*([^\r\n]*)\r?\n\s*Body:[ \t]*\r?\n?(.*?)\r?\n[ \t]*</email>`)

// ParseSequence extracts the ordered steps of a multi-email sequence.
// Steps are returned in document order with their declared step numbers.
// A response with no recognizable step is an error: sequence generation
// promises at least one email.
func ParseSequence(rawText string) (*types.SequenceResult, error) {
	text := normalize(rawText)
	if text == "" {
		return nil, &ParseError{Message: "model returned an empty response"}
	}

	matches := stepRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, &ParseError{Message: "no email steps found in sequence response"}
	}

	result := &types.SequenceResult{
		Steps:   make([]types.SequenceStep, 0, len(matches)),
		RawText: rawText,
	}
	for _, m := range matches {
		step, err := strconv.Atoi(m[1])
		if err != nil {
			// Unreachable with a \d+ capture; guard anyway.
			continue
		}
		result.Steps = append(result.Steps, types.SequenceStep{
			Step:    step,
			Subject: strings.TrimSpace(m[2]),
			Body:    strings.TrimSpace(m[3]),
		})
	}

	return result, nil
}
