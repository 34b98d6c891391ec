package coverage

import (
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	m "github.com/mouse-blink/sqlcover/internal/model"
)

// Correlator matches runtime execution events against the statically parsed
// statement and branch ranges and aggregates the resulting hit counts.
type Correlator interface {
	Correlate(batches []m.Batch, events m.EventSource, exceptions []string, meta m.RunMetadata) (*m.CoverageResult, error)
}

type correlator struct {
	log *zap.SugaredLogger
}

// NewCorrelator constructs a Correlator. A nil logger discards output.
func NewCorrelator(log *zap.SugaredLogger) Correlator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &correlator{log: log}
}

// Correlate drains events, counts statement hits, mirrors them onto branches
// and computes batch and global summaries. The input batches are copied, so
// the caller's data is never modified. Any error aborts the run without a
// partial result.
func (c *correlator) Correlate(batches []m.Batch, events m.EventSource, exceptions []string, meta m.RunMetadata) (*m.CoverageResult, error) {
	owned := cloneBatches(batches)

	stats, err := c.applyEvents(owned, events)
	if err != nil {
		return nil, err
	}

	var total m.Summary

	for i := range owned {
		if err := resolveBranches(&owned[i]); err != nil {
			return nil, err
		}

		owned[i].Summary = owned[i].Tally()
		total = total.Add(owned[i].Summary)
	}

	c.log.Debugw("correlation finished",
		"events", stats.Events,
		"matched", stats.Matched,
		"unknown_object", stats.UnknownObject,
		"no_statement", stats.NoStatement,
		"statements", total.StatementCount,
		"covered", total.CoveredStatementCount,
	)

	return &m.CoverageResult{
		Batches:    owned,
		Exceptions: append([]string(nil), exceptions...),
		Summary:    total,
		Meta:       meta,
		Stats:      stats,
	}, nil
}

func (c *correlator) applyEvents(batches []m.Batch, events m.EventSource) (m.CorrelationStats, error) {
	var stats m.CorrelationStats

	if events == nil {
		return stats, nil
	}

	// First batch wins when object ids repeat.
	byObject := make(map[int]int, len(batches))
	for i := range batches {
		if _, ok := byObject[batches[i].ObjectID]; !ok {
			byObject[batches[i].ObjectID] = i
		}
	}

	for {
		event, err := events.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}

		if err != nil {
			return stats, errors.Wrapf(err, "reading executed event %d", stats.Events+1)
		}

		stats.Events++

		idx, ok := byObject[event.ObjectID]
		if !ok {
			stats.UnknownObject++
			continue
		}

		batch := &batches[idx]

		hit := firstOverlapping(batch.Statements, EventRange(event))
		if hit < 0 {
			stats.NoStatement++
			c.log.Debugw("event matches no statement",
				"object", batch.ObjectName, "offset", event.Offset, "length", event.Length)

			continue
		}

		batch.Statements[hit].HitCount++
		stats.Matched++
	}
}

// resolveBranches copies onto every branch the hit count of the first
// statement in the batch that overlaps it. That statement is not necessarily
// the branch's parent.
func resolveBranches(batch *m.Batch) error {
	for si := range batch.Statements {
		branches := batch.Statements[si].Branches

		for bi := range branches {
			cover := firstOverlapping(batch.Statements, BranchRange(branches[bi]))
			if cover < 0 {
				return errors.WithDetailf(
					errors.Wrapf(ErrReferenceData, "branch %d of statement %d in %q has no covering statement",
						bi, si, batch.ObjectName),
					"branch offset=%d length=%d", branches[bi].Offset, branches[bi].Length)
			}

			branches[bi].HitCount = batch.Statements[cover].HitCount
		}
	}

	return nil
}

func cloneBatches(batches []m.Batch) []m.Batch {
	out := make([]m.Batch, len(batches))

	for i, b := range batches {
		out[i] = b
		out[i].Summary = m.Summary{}
		out[i].Statements = make([]m.Statement, len(b.Statements))

		for j, s := range b.Statements {
			s.HitCount = 0
			s.Branches = append([]m.Branch(nil), s.Branches...)

			for k := range s.Branches {
				s.Branches[k].HitCount = 0
			}

			out[i].Statements[j] = s
		}
	}

	return out
}
