package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/sqlcover/internal/domain"
	m "github.com/mouse-blink/sqlcover/internal/model"
	"github.com/mouse-blink/sqlcover/internal/report"
)

var reportWorkloadFlag string
var reportTraceFlag string
var reportFormatFlags []string
var reportOutputFlag string
var reportStoreFlag string
var reportSaveSourcesFlag bool
var reportPackageFlag string
var reportCommandFlag string

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Correlate a trace with a workload and write coverage reports",
		Long: `Correlate the executed-statement trace of a run with the parsed workload
and write one report per requested format into the output directory.

Trace locations:
  - trace.yaml          multi-document YAML stream, one event per document
  - sqlite://trace.db   SQLite database queried with trace.query
  - (empty)             no events; every statement is reported uncovered`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := reportArgs(cmd)
			if err != nil {
				return err
			}

			return workflow.Report(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVarP(&reportWorkloadFlag, "workload", "w", "", "parsed workload file (YAML or JSON)")
	cmd.Flags().StringVarP(&reportTraceFlag, "trace", "t", "", "executed-statement trace location")
	cmd.Flags().StringSliceVarP(&reportFormatFlags, "format", "f", nil,
		"report formats: raw, html, html2, cobertura, opencover, null (can be repeated)")
	cmd.Flags().StringVarP(&reportOutputFlag, "output", "o", "", "directory the reports are written to")
	cmd.Flags().StringVar(&reportStoreFlag, "store", "", "save a snapshot of the correlated result to this file")
	cmd.Flags().BoolVar(&reportSaveSourcesFlag, "save-sources", false, "also write every batch text to the output directory")
	cmd.Flags().StringVar(&reportPackageFlag, "package", "", "Cobertura package name")
	cmd.Flags().StringVar(&reportCommandFlag, "command", "", "command detail shown in the report header")

	_ = cmd.MarkFlagRequired("workload")

	return cmd
}

// reportArgs merges flags over the loaded configuration.
func reportArgs(cmd *cobra.Command) (domain.ReportArgs, error) {
	flags := cmd.Flags()

	var (
		formats []report.Format
		err     error
	)

	if flags.Changed("format") {
		formats, err = parseFormats(reportFormatFlags)
	} else {
		formats, err = cfg.ReportFormats()
	}

	if err != nil {
		return domain.ReportArgs{}, err
	}

	output := cfg.Output
	if flags.Changed("output") {
		output = reportOutputFlag
	}

	store := cfg.Store
	if flags.Changed("store") {
		store = reportStoreFlag
	}

	saveSources := cfg.SaveSources
	if flags.Changed("save-sources") {
		saveSources = reportSaveSourcesFlag
	}

	pkg := cfg.Package
	if flags.Changed("package") {
		pkg = reportPackageFlag
	}

	command := reportCommandFlag
	if command == "" {
		command = cmd.CommandPath()
	}

	return domain.ReportArgs{
		Workload:      m.Path(reportWorkloadFlag),
		Trace:         reportTraceFlag,
		Formats:       formats,
		Output:        m.Path(output),
		Store:         m.Path(store),
		SaveSources:   saveSources,
		CommandDetail: command,
		Cobertura: report.CoberturaOptions{
			PackageName: pkg,
			Customize:   cfg.CoberturaHook(),
		},
	}, nil
}

func parseFormats(names []string) ([]report.Format, error) {
	formats := make([]report.Format, 0, len(names))

	for _, name := range names {
		f, err := report.ParseFormat(name)
		if err != nil {
			return nil, err
		}

		formats = append(formats, f)
	}

	return formats, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
