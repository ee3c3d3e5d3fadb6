package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sales-coach-go/internal/processor"
	"sales-coach-go/internal/report"
)

const (
	formatJSON = "json"
	formatText = "text"
)

func newAnalyzeCmd(a *appState) *cobra.Command {
	var (
		audioURL string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "analyze [transcript-file]",
		Short: "Analyze a transcript file, stdin, or a recording link",
		Long: "Analyze reads a transcript from the given file (or stdin when the file is omitted or \"-\"),\n" +
			"or transcribes --audio-url first, and prints the report.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			if audioURL != "" && len(args) > 0 {
				return fmt.Errorf("use either a transcript file or --audio-url, not both")
			}

			pipeline := a.build()
			var res processor.CallResult
			if audioURL != "" {
				res = pipeline.Processor.ProcessAudio(cmd.Context(), audioURL)
			} else {
				raw, err := readTranscript(cmd, args)
				if err != nil {
					return err
				}
				res = pipeline.Processor.ProcessTranscript(cmd.Context(), raw)
			}
			return printResult(cmd.OutOrStdout(), format, res)
		},
	}

	cmd.Flags().StringVar(&audioURL, "audio-url", "", "Transcribe this recording link before analysis")
	cmd.Flags().StringVar(&format, "format", formatJSON, "Output format: json|text")
	return cmd
}

func readTranscript(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}

func checkFormat(format string) error {
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unsupported format %q (want json or text)", format)
	}
	return nil
}

func printResult(w io.Writer, format string, res processor.CallResult) error {
	if format == formatText {
		_, err := io.WriteString(w, report.RenderText(res.Report))
		return err
	}
	return writeJSON(w, res)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
