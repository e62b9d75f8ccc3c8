// Package batch generates outreach emails for many prospects with a
// bounded worker pool, preserving input order in the results and
// recording per-row failures instead of aborting.
package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/shegge-stack/EmailGenerator/internal/config"
	"github.com/shegge-stack/EmailGenerator/internal/outreach"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// DefaultWorkers is the pool size when none is configured.
const DefaultWorkers = 4

// Outcome is the result for one input row. Exactly one of Email or
// Sequence is set on success; Err is set on failure. RowIndex always
// matches the row's position in the input.
type Outcome struct {
	RowIndex int
	Prospect *types.Prospect
	Email    *types.EmailResult
	Sequence *types.SequenceResult
	Err      error
}

// Options configures a batch run.
type Options struct {
	Mode types.Mode

	// Workers bounds pool size; values above config.MaxBatchWorkers are
	// clamped, zero means DefaultWorkers.
	Workers int

	// RateLimitRPS throttles generation requests across all workers.
	// Zero disables throttling.
	RateLimitRPS float64

	// Generation settings forwarded to every row.
	Style  string
	Tone   string
	Length string
	Steps  int

	// OnProgress is invoked after each row completes with the running
	// completed count. Calls are serialized.
	OnProgress func(completed, total int)
}

// Run processes every prospect exactly once and returns one outcome per
// input row, indexed by row. A row failure never aborts the batch.
// Cancelling the context stops launching new rows; in-flight rows finish
// and unprocessed rows carry a context-backed error.
func Run(ctx context.Context, gen *outreach.Generator, prospects []*types.Prospect, opts Options) []Outcome {
	out := make([]Outcome, len(prospects))
	for i := range out {
		out[i] = Outcome{RowIndex: i, Prospect: prospects[i]}
	}
	if len(prospects) == 0 {
		return out
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > config.MaxBatchWorkers {
		workers = config.MaxBatchWorkers
	}
	if workers > len(prospects) {
		workers = len(prospects)
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	var progressMu sync.Mutex
	completed := 0
	total := len(prospects)

	reportDone := func() {
		progressMu.Lock()
		completed++
		done := completed
		progressMu.Unlock()
		if opts.OnProgress != nil {
			opts.OnProgress(done, total)
		}
	}

	worker := func() {
		defer wg.Done()
		for idx := range jobs {
			if ctx.Err() != nil {
				return
			}
			email, seq, err := processRow(ctx, gen, prospects[idx], opts, limiter)
			out[idx].Email = email
			out[idx].Sequence = seq
			out[idx].Err = err
			reportDone()
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go worker()
	}

	go func() {
		defer close(jobs)
		for i := range prospects {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range out {
			if out[i].Email == nil && out[i].Sequence == nil && out[i].Err == nil {
				out[i].Err = fmt.Errorf("canceled before processing: %w", err)
			}
		}
	}

	return out
}

// processRow generates one email or sequence, honoring the shared rate
// limit.
func processRow(ctx context.Context, gen *outreach.Generator, prospect *types.Prospect, opts Options, limiter *rate.Limiter) (*types.EmailResult, *types.SequenceResult, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, nil, err
		}
	}

	genOpts := outreach.Options{
		Mode:   opts.Mode,
		Style:  opts.Style,
		Tone:   opts.Tone,
		Length: opts.Length,
		Steps:  opts.Steps,
		Quiet:  true,
	}

	if opts.Mode == types.ModeSequence {
		seq, err := gen.GenerateSequence(ctx, prospect, genOpts)
		return nil, seq, err
	}
	email, err := gen.GenerateEmail(ctx, prospect, genOpts)
	return email, nil, err
}

// Summary counts successful and failed outcomes.
func Summary(outcomes []Outcome) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}
