package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"sales-coach-go/internal/app"
)

func newBatchCmd(a *appState) *cobra.Command {
	var (
		input  string
		output string
		format string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Analyze every call in an xlsx dataset and print the team action card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if input == "" {
				input = a.cfg.DatasetPath
			}

			records, err := a.loadDatasetFn(input)
			if err != nil {
				return fmt.Errorf("load dataset %s: %w", input, err)
			}
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}

			run := a.build().RunBatch(cmd.Context(), records)
			if output != "" {
				if err := a.writeReportsFn(output, run.Results); err != nil {
					return fmt.Errorf("write reports: %w", err)
				}
				a.log.WithField("path", output).Info("batch reports written")
			}

			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), run)
			}
			return printBatchText(cmd.OutOrStdout(), run)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Dataset xlsx path (default DATASET_PATH)")
	cmd.Flags().StringVar(&output, "output", "", "Write per-call results to this xlsx file")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: json|text")
	cmd.Flags().IntVar(&limit, "limit", 0, "Analyze at most this many calls; 0 means all")
	return cmd
}

func printBatchText(w io.Writer, run app.BatchRun) error {
	ins := run.Insight
	fmt.Fprintf(w, "Batch %s\n", run.ID)
	fmt.Fprintf(w, "Calls: %d (fallback: %d)\n", ins.TotalCalls, ins.FallbackCalls)
	fmt.Fprintf(w, "Price objection rate: %.0f%%\n", ins.PriceObjectionRate*100)
	fmt.Fprintf(w, "Average score: %.1f/10 over %d calls\n", ins.AverageScore, ins.ScoredCalls)

	sentiments := make([]string, 0, len(ins.SentimentCounts))
	for s := range ins.SentimentCounts {
		sentiments = append(sentiments, s)
	}
	sort.Strings(sentiments)
	for _, s := range sentiments {
		fmt.Fprintf(w, "  %s: %d\n", s, ins.SentimentCounts[s])
	}

	fmt.Fprintf(w, "\nInsight: %s\nAction: %s\nImpact: %s\n", run.ActionCard.Insight, run.ActionCard.Action, run.ActionCard.Impact)
	return nil
}
