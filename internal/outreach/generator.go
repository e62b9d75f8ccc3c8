// Package outreach orchestrates single-prospect email generation: prompt
// composition, model invocation, response parsing, and optional quality
// analysis and file output.
package outreach

import (
	"context"
	"fmt"

	"github.com/shegge-stack/EmailGenerator/internal/llm"
	"github.com/shegge-stack/EmailGenerator/internal/parsing"
	"github.com/shegge-stack/EmailGenerator/internal/prompts"
	"github.com/shegge-stack/EmailGenerator/internal/quality"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// Options holds per-generation settings beyond the prospect itself.
type Options struct {
	Mode types.Mode

	// Style selects a named writing style (standard mode only).
	Style string

	// Tone and Length carry the email config guidance.
	Tone   string
	Length string

	// Steps is the sequence length; zero means the default.
	Steps int

	// DynamicTemplate optionally replaces the embedded prospect template.
	DynamicTemplate string

	// Quiet suppresses step-by-step progress printing.
	Quiet bool

	OnProgress ProgressCallback
}

// Generator runs the generation pipeline against a configured model client.
type Generator struct {
	client llm.Client
}

// NewGenerator builds a Generator around a model client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// GenerateEmail produces a single email for the prospect. Enhanced mode
// additionally extracts the analysis block and attaches quality signals.
func (g *Generator) GenerateEmail(ctx context.Context, prospect *types.Prospect, opts Options) (*types.EmailResult, error) {
	if opts.Mode == "" {
		opts.Mode = types.ModeStandard
	}
	if opts.Mode == types.ModeSequence {
		return nil, fmt.Errorf("use GenerateSequence for sequence mode")
	}

	rawText, err := g.run(ctx, prospect, opts)
	if err != nil {
		return nil, err
	}

	g.step(opts, 4, "Parsing response...")
	result, err := parsing.ParseEmail(opts.Mode, rawText)
	if err != nil {
		return nil, err
	}
	emitProgress(opts.OnProgress, StepParse, CategoryPipeline, "Parsed model response", nil)

	if opts.Mode == types.ModeEnhanced {
		result.Quality = quality.Analyze(result.Subject, result.Body, prospect)
		emitProgress(opts.OnProgress, StepQuality, CategoryResult, "Analyzed email quality", result.Quality)
	}

	emitProgress(opts.OnProgress, StepParse, CategoryResult, "Email generated", result)
	return result, nil
}

// GenerateSequence produces a multi-step outreach sequence for the prospect.
func (g *Generator) GenerateSequence(ctx context.Context, prospect *types.Prospect, opts Options) (*types.SequenceResult, error) {
	opts.Mode = types.ModeSequence

	rawText, err := g.run(ctx, prospect, opts)
	if err != nil {
		return nil, err
	}

	g.step(opts, 4, "Parsing sequence...")
	result, err := parsing.ParseSequence(rawText)
	if err != nil {
		return nil, err
	}
	emitProgress(opts.OnProgress, StepParse, CategoryResult,
		fmt.Sprintf("Parsed %d sequence steps", len(result.Steps)), result)

	return result, nil
}

// run executes the shared validate/compose/generate steps and returns the
// raw model output.
func (g *Generator) run(ctx context.Context, prospect *types.Prospect, opts Options) (string, error) {
	g.step(opts, 1, fmt.Sprintf("Validating prospect data for %s...", prospect.DisplayName()))
	if err := prospect.Validate(); err != nil {
		return "", err
	}
	emitProgress(opts.OnProgress, StepValidate, CategoryPipeline, "Validated prospect data", nil)

	g.step(opts, 2, "Composing prompt...")
	payload, err := prompts.Compose(opts.Mode, prospect, prompts.Options{
		Style:           opts.Style,
		Tone:            opts.Tone,
		Length:          opts.Length,
		Steps:           opts.Steps,
		DynamicTemplate: opts.DynamicTemplate,
	})
	if err != nil {
		return "", err
	}
	emitProgress(opts.OnProgress, StepCompose, CategoryPipeline, "Composed prompt payload", nil)

	g.step(opts, 3, fmt.Sprintf("Generating with %s...", g.client.Model()))
	rawText, err := g.client.Generate(ctx, llm.Request{Prompt: payload})
	if err != nil {
		return "", err
	}
	emitProgress(opts.OnProgress, StepGenerate, CategoryPipeline, "Model generation complete", nil)

	return rawText, nil
}

// step prints pipeline progress unless quiet.
func (g *Generator) step(opts Options, n int, msg string) {
	if !opts.Quiet {
		fmt.Printf("Step %d/4: %s\n", n, msg)
	}
}
