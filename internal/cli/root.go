package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sales-coach-go/internal/app"
	"sales-coach-go/internal/config"
	"sales-coach-go/internal/dataset"
	"sales-coach-go/internal/logger"
	"sales-coach-go/internal/types"
)

type appState struct {
	envFile        string
	verbose        bool
	quiet          bool
	mockLLM        bool
	mockTranscribe bool

	cfg config.Config
	log *logger.Logger

	newAppFn       func(cfg config.Config, log *logger.Logger) *app.App
	loadDatasetFn  func(path string) ([]types.CallRecord, error)
	writeReportsFn func(path string, results []types.BatchResult) error
}

func NewRootCmd() *cobra.Command {
	a := &appState{
		newAppFn: func(cfg config.Config, log *logger.Logger) *app.App {
			return app.New(cfg, log)
		},
		loadDatasetFn:  dataset.Load,
		writeReportsFn: dataset.WriteReports,
	}

	cmd := &cobra.Command{
		Use:           "coach",
		Short:         "Analyze sales call transcripts and coach the advisor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "Load configuration from this .env file instead of ./.env")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable debug logs")
	flags.BoolVar(&a.quiet, "quiet", false, "Disable logs")
	flags.BoolVar(&a.mockLLM, "mock-llm", false, "Use the built-in demo model instead of LLM_BASE_URL")
	flags.BoolVar(&a.mockTranscribe, "mock-transcribe", false, "Use a fixed demo transcript instead of TRANSCRIBE_URL")

	cmd.AddCommand(newAnalyzeCmd(a))
	cmd.AddCommand(newTranscribeCmd(a))
	cmd.AddCommand(newBatchCmd(a))

	return cmd
}

func (a *appState) setup(logOut io.Writer) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.UseMockLLM = cfg.UseMockLLM || a.mockLLM
	cfg.UseMockTranscribe = cfg.UseMockTranscribe || a.mockTranscribe
	a.cfg = cfg

	switch {
	case a.quiet:
		a.log = logger.Discard()
	default:
		a.log = logger.NewTo(logOut)
		if a.verbose {
			a.log.Logger.SetLevel(logrus.DebugLevel)
		}
	}
	return nil
}

func (a *appState) build() *app.App {
	return a.newAppFn(a.cfg, a.log)
}
