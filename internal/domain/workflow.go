// Package domain wires the coverage engine, the adapters and the UI into the
// report and view use cases.
package domain

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/sqlcover/internal/adapter"
	"github.com/mouse-blink/sqlcover/internal/controller"
	"github.com/mouse-blink/sqlcover/internal/coverage"
	m "github.com/mouse-blink/sqlcover/internal/model"
	"github.com/mouse-blink/sqlcover/internal/report"
)

// Workflow defines the interface for coverage reporting operations.
type Workflow interface {
	Report(ctx context.Context, args ReportArgs) error
	View(args ViewArgs) error
}

// ReportArgs describes one report run.
type ReportArgs struct {
	Workload      m.Path
	Trace         string
	Formats       []report.Format
	Output        m.Path
	Store         m.Path
	SaveSources   bool
	CommandDetail string
	Cobertura     report.CoberturaOptions
}

// ViewArgs names a stored snapshot to display.
type ViewArgs struct {
	Store m.Path
}

type workflow struct {
	workloads  adapter.WorkloadAdapter
	traces     adapter.TraceAdapter
	store      adapter.ResultStore
	writer     adapter.ReportWriter
	ui         controller.UI
	correlator coverage.Correlator
	log        *zap.SugaredLogger

	now      func() time.Time
	newRunID func() string
}

// NewWorkflow creates a new Workflow instance with the provided adapters.
// A nil logger discards output.
func NewWorkflow(
	workloads adapter.WorkloadAdapter,
	traces adapter.TraceAdapter,
	store adapter.ResultStore,
	writer adapter.ReportWriter,
	ui controller.UI,
	correlator coverage.Correlator,
	log *zap.SugaredLogger,
) Workflow {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &workflow{
		workloads:  workloads,
		traces:     traces,
		store:      store,
		writer:     writer,
		ui:         ui,
		correlator: correlator,
		log:        log,
		now:        time.Now,
		newRunID:   uuid.NewString,
	}
}

// Report correlates a workload with its trace, renders every requested
// format and writes the results to args.Output.
func (w *workflow) Report(ctx context.Context, args ReportArgs) error {
	if args.Workload == "" {
		return errors.New("a workload file is required")
	}

	if err := w.ui.Start(); err != nil {
		return errors.Wrap(err, "starting ui")
	}
	defer w.ui.Close()

	result, err := w.correlate(ctx, args)
	if err != nil {
		return err
	}

	if args.Store != "" {
		if err := w.store.SaveResult(args.Store, result); err != nil {
			return errors.Wrapf(err, "saving snapshot to %s", args.Store)
		}

		w.log.Infow("snapshot saved", "path", args.Store, "run_id", result.Meta.RunID)
	}

	if args.SaveSources {
		if err := w.writer.SaveSourceFiles(args.Output, result.Batches); err != nil {
			return errors.Wrap(err, "saving batch sources")
		}
	}

	rendered, err := w.render(ctx, result, args)
	if err != nil {
		return err
	}

	for i, format := range args.Formats {
		if format == report.FormatNull {
			continue
		}

		path, err := w.writer.WriteReport(args.Output, report.DefaultFileName(format), rendered[i])
		if err != nil {
			return errors.Wrapf(err, "writing %s report", format)
		}

		w.log.Infow("report written", "format", format, "path", path)
		w.ui.DisplayReportWritten(string(format), path)
	}

	if err := w.ui.DisplaySummary(result); err != nil {
		return err
	}

	w.ui.Wait()

	return nil
}

func (w *workflow) correlate(ctx context.Context, args ReportArgs) (*m.CoverageResult, error) {
	workload, err := w.workloads.Load(args.Workload)
	if err != nil {
		return nil, errors.Wrapf(err, "loading workload %s", args.Workload)
	}

	stream, err := w.traces.Open(ctx, args.Trace)
	if err != nil {
		return nil, errors.Wrapf(err, "opening trace %s", args.Trace)
	}

	defer func() {
		if cerr := stream.Close(); cerr != nil {
			w.log.Warnw("closing trace", "location", args.Trace, "error", cerr)
		}
	}()

	meta := m.RunMetadata{
		RunID:         w.newRunID(),
		DatabaseName:  workload.DatabaseName,
		DataSource:    workload.DataSource,
		CommandDetail: args.CommandDetail,
		StartedAt:     w.now(),
	}

	w.log.Infow("correlating",
		"run_id", meta.RunID,
		"workload", args.Workload,
		"trace", args.Trace,
		"batches", len(workload.Batches))

	result, err := w.correlator.Correlate(workload.Batches, stream, workload.Exceptions, meta)
	if err != nil {
		return nil, errors.Wrap(err, "correlating coverage")
	}

	w.log.Infow("coverage correlated",
		"run_id", meta.RunID,
		"statements", result.Summary.StatementCount,
		"covered", result.Summary.CoveredStatementCount,
		"events", result.Stats.Events)

	return result, nil
}

// render produces every format concurrently. Renderers only read result.
func (w *workflow) render(ctx context.Context, result *m.CoverageResult, args ReportArgs) ([]string, error) {
	rendered := make([]string, len(args.Formats))
	opts := report.Options{Cobertura: args.Cobertura}

	g, gctx := errgroup.WithContext(ctx)

	for i, format := range args.Formats {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			out, err := report.Render(format, result, opts)
			if err != nil {
				return errors.Wrapf(err, "rendering %s report", format)
			}

			rendered[i] = out

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rendered, nil
}

// View displays a previously stored snapshot.
func (w *workflow) View(args ViewArgs) error {
	if args.Store == "" {
		return errors.New("a snapshot file is required")
	}

	result, err := w.store.LoadResult(args.Store)
	if err != nil {
		return errors.Wrapf(err, "loading snapshot %s", args.Store)
	}

	if err := w.ui.Start(); err != nil {
		return errors.Wrap(err, "starting ui")
	}
	defer w.ui.Close()

	if err := w.ui.DisplaySummary(result); err != nil {
		return err
	}

	w.ui.Wait()

	return nil
}
