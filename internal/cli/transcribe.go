package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sales-coach-go/internal/normalizer"
)

func newTranscribeCmd(a *appState) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "transcribe <audio-url>",
		Short: "Transcribe a recording link and print the cleaned text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := a.build().Transcriber.Transcribe(cmd.Context(), args[0])
			if !raw {
				text = normalizer.Normalize(text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the transcript without normalization")
	return cmd
}
