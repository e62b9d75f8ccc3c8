package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient returns canned, parseable output without touching the
// network. It is only ever selected by explicit configuration
// (provider: mock); a failing network client never degrades into it.
type MockClient struct {
	model string
}

// NewMockClient builds a mock client. The configured model name is kept
// so output metadata stays consistent with a real run.
func NewMockClient(cfg *Config) *MockClient {
	model := cfg.Model
	if model == "" {
		model = "mock-model"
	}
	return &MockClient{model: model}
}

// Model returns the configured model identifier.
func (c *MockClient) Model() string {
	return c.model
}

// Generate produces deterministic output shaped after the prompt's
// requested format: a step sequence when the prompt asks for step
// markers, an analysis-wrapped email when it asks for an analysis
// block, and a plain subject/body email otherwise.
func (c *MockClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &TimeoutError{Message: "mock generation canceled", Cause: err}
	}

	switch {
	case strings.Contains(req.Prompt, `<email step=`):
		return mockSequence(3), nil
	case strings.Contains(req.Prompt, "<outreach_analysis>"):
		return mockEnhanced(), nil
	default:
		return "Subject: Quick question about your recent announcement\n\n" +
			"Hi there,\n\n" +
			"Saw the news about your latest launch. We helped a similar team hit their growth targets in under two quarters.\n\n" +
			"Worth a brief call next week?\n\n" +
			"Best regards", nil
	}
}

func mockEnhanced() string {
	return "<outreach_analysis>\n" +
		"Pain points: scaling outbound while keeping messages personal.\n" +
		"Angle: recent activity signals expansion; lead with the case study.\n" +
		"</outreach_analysis>\n\n" +
		"<email>\n" +
		"Subject: Scaling outreach without losing the personal touch\n\n" +
		"Hi there,\n\n" +
		"Noticed your recent expansion. Teams at your stage usually hit a wall keeping outreach personal at volume.\n\n" +
		"We recently helped a similar company fix exactly that. Worth 15 minutes?\n\n" +
		"Best regards\n" +
		"</email>"
}

func mockSequence(steps int) string {
	var sb strings.Builder
	for i := 1; i <= steps; i++ {
		fmt.Fprintf(&sb, "<email step=\"%d\">\nSubject: Follow-up %d on your recent announcement\nBody:\nHi there,\n\nThis is touch %d of our outreach. Still think there is a strong fit worth discussing.\n\nBest regards\n</email>\n\n", i, i, i)
	}
	return strings.TrimSpace(sb.String())
}
