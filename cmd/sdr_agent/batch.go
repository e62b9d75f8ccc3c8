package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shegge-stack/EmailGenerator/internal/batch"
	"github.com/shegge-stack/EmailGenerator/internal/observability"
	"github.com/shegge-stack/EmailGenerator/internal/outreach"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate emails for every prospect in a CSV file",
	Long: `Read prospects from a CSV file and generate an email (or sequence) for
each row with a bounded worker pool. Row failures are recorded in the
output file instead of aborting the run.`,
	RunE: runBatch,
}

var (
	batchConfigPath string
	batchInput      string
	batchOutput     string
	batchMode       string
	batchWorkers    int
	batchRateLimit  float64
	batchStrict     bool
	batchResume     bool
	batchModel      string
	batchProvider   string
	batchVerbose    bool
)

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.yaml (default: ./config.yaml if present)")
	batchCmd.Flags().StringVar(&batchInput, "input", "", "Path to the prospects CSV file (required)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "Path for the results CSV (default: <input>_results.csv)")
	batchCmd.Flags().StringVar(&batchMode, "mode", "standard", "Generation mode: standard, enhanced, or sequence")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Worker pool size (default from config)")
	batchCmd.Flags().Float64Var(&batchRateLimit, "rate-limit", 0, "Generation requests per second, 0 = unlimited")
	batchCmd.Flags().BoolVar(&batchStrict, "strict", false, "Exit non-zero if any row fails")
	batchCmd.Flags().BoolVar(&batchResume, "resume", false, "Keep successful rows from an existing output file and retry the rest")
	batchCmd.Flags().StringVarP(&batchModel, "model", "m", "", "Model override for this run")
	batchCmd.Flags().StringVarP(&batchProvider, "provider", "p", "", "Provider override: openai, openrouter, or mock")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print per-row progress")

	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig(batchConfigPath)
	if err != nil {
		return err
	}

	mode, err := types.ParseMode(batchMode)
	if err != nil {
		return err
	}

	client, err := buildClient(&cfg, batchProvider, batchModel)
	if err != nil {
		return err
	}

	input, err := os.Open(batchInput)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	prospects, err := batch.ReadProspects(input)
	_ = input.Close()
	if err != nil {
		return err
	}
	if len(prospects) == 0 {
		return fmt.Errorf("no prospect rows found in %s", batchInput)
	}

	output := batchOutput
	if output == "" {
		output = strings.TrimSuffix(batchInput, ".csv") + "_results.csv"
	}

	// In resume mode, rows already marked success in the output file are
	// carried over and only the remainder is regenerated.
	done := map[int]bool{}
	if batchResume && mode == types.ModeSequence {
		return fmt.Errorf("--resume is not supported for sequence mode")
	}
	if batchResume {
		done, err = completedRows(output, len(prospects))
		if err != nil {
			return err
		}
	}

	workers := batchWorkers
	if workers == 0 {
		workers = cfg.Batch.Workers
	}
	rateLimit := batchRateLimit
	if rateLimit == 0 {
		rateLimit = cfg.Batch.RateLimit
	}

	var pending []*types.Prospect
	pendingIndex := make([]int, 0, len(prospects))
	for i, p := range prospects {
		if done[i] {
			continue
		}
		pending = append(pending, p)
		pendingIndex = append(pendingIndex, i)
	}

	fmt.Printf("Processing %d of %d prospects with %d workers...\n", len(pending), len(prospects), workers)

	opts := batch.Options{
		Mode:         mode,
		Workers:      workers,
		RateLimitRPS: rateLimit,
		Style:        cfg.Email.Style,
		Tone:         cfg.Email.Tone,
		Length:       cfg.Email.Length,
	}
	if batchVerbose || cfg.Logging.Verbose {
		opts.OnProgress = func(completed, total int) {
			fmt.Printf("  %d/%d complete\n", completed, total)
		}
	}

	gen := outreach.NewGenerator(client)
	partial := batch.Run(context.Background(), gen, pending, opts)

	// Merge regenerated rows back into full input order. Resumed rows keep
	// a bare success marker; their content is already in the output file.
	outcomes := make([]batch.Outcome, len(prospects))
	for i, p := range prospects {
		outcomes[i] = batch.Outcome{RowIndex: i, Prospect: p}
		if done[i] {
			outcomes[i].Email = &types.EmailResult{}
		}
	}
	if batchResume {
		if err := carryOverResults(output, outcomes, done); err != nil {
			return err
		}
	}
	for j, o := range partial {
		i := pendingIndex[j]
		outcomes[i].Email = o.Email
		outcomes[i].Sequence = o.Sequence
		outcomes[i].Err = o.Err
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if mode == types.ModeSequence {
		err = batch.WriteSequenceResults(out, outcomes)
	} else {
		err = batch.WriteEmailResults(out, outcomes)
	}
	if err != nil {
		return err
	}

	succeeded, failed := batch.Summary(outcomes)
	observability.NewPrinter(os.Stdout).PrintBatchSummary(len(outcomes), succeeded, failed)
	fmt.Printf("Results written to: %s\n", output)

	if failed == len(outcomes) {
		return fmt.Errorf("all %d rows failed", failed)
	}
	if batchStrict && failed > 0 {
		return fmt.Errorf("%d of %d rows failed", failed, len(outcomes))
	}
	return nil
}

// completedRows reads an existing results file and reports which input row
// indexes already succeeded. A missing file means nothing is done yet.
func completedRows(path string, total int) (map[int]bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[int]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open previous results: %w", err)
	}
	defer f.Close()

	rows, statusIdx, err := readResultRows(f)
	if err != nil {
		return nil, err
	}

	done := make(map[int]bool)
	for i, row := range rows {
		if i >= total {
			break
		}
		if statusIdx < len(row) && row[statusIdx] == "success" {
			done[i] = true
		}
	}
	return done, nil
}

// carryOverResults copies the subject/body of previously successful rows
// into the merged outcome list so the rewritten output file keeps them.
func carryOverResults(path string, outcomes []batch.Outcome, done map[int]bool) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open previous results: %w", err)
	}
	defer f.Close()

	rows, statusIdx, err := readResultRows(f)
	if err != nil {
		return err
	}

	for i, row := range rows {
		if i >= len(outcomes) || !done[i] {
			continue
		}
		if statusIdx+2 < len(row) {
			outcomes[i].Email = &types.EmailResult{
				Subject: row[statusIdx+1],
				Body:    row[statusIdx+2],
			}
		}
	}
	return nil
}

// readResultRows parses a results CSV and locates the status column.
func readResultRows(r io.Reader) ([][]string, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read previous results header: %w", err)
	}
	statusIdx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == "status" {
			statusIdx = i
			break
		}
	}
	if statusIdx < 0 {
		return nil, 0, fmt.Errorf("previous results file has no status column; run without --resume")
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read previous results: %w", err)
	}
	return rows, statusIdx, nil
}
