package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/esolpred/esolpred/internal/domain/chem"
	"github.com/esolpred/esolpred/internal/infrastructure/logging"
	"github.com/esolpred/esolpred/pkg/errors"
)

// Record is one descriptor record tagged with the 0-based index of the input
// row it was computed from.  Carrying the index explicitly keeps the
// alignment invariant visible in the type instead of implied by ordering.
type Record struct {
	Index int
	Desc  chem.Descriptors
}

// Extractor computes descriptor records for a sequence of structure strings.
// Per-row failures (empty value, unparseable SMILES) never escape it: the row
// is skipped with a warning and processing continues.  Only the all-rows-fail
// case escalates.
type Extractor struct {
	concurrency int
	logger      logging.Logger
}

// NewExtractor constructs an Extractor.  Concurrency below 1 is clamped to
// sequential processing.
func NewExtractor(concurrency int, logger logging.Logger) *Extractor {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Extractor{concurrency: concurrency, logger: logger.Named("extractor")}
}

// Extract computes a Record for every index whose SMILES parses, returned in
// ascending index order regardless of concurrency.  A descriptor that could
// not be computed stays in the record as NaN — missing-value filtering is the
// feature table's job, so the parse-failure and missing-value drop stages
// remain distinguishable.
//
// Returns CodeNoValidInput when not a single row survives.
func (e *Extractor) Extract(ctx context.Context, values []string) ([]Record, *errors.AppError) {
	results := make([]*chem.Descriptors, len(values))

	if e.concurrency == 1 {
		for i, v := range values {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, errors.CodeUnknown, "extraction cancelled")
			}
			results[i] = e.extractOne(i, v)
		}
	} else if err := e.extractParallel(ctx, values, results); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(values))
	for i, d := range results {
		if d != nil {
			records = append(records, Record{Index: i, Desc: *d})
		}
	}

	if len(records) == 0 {
		return nil, errors.New(errors.CodeNoValidInput,
			"No valid SMILES strings found in input")
	}
	return records, nil
}

// extractOne processes a single row.  A nil return means the row is excluded.
func (e *Extractor) extractOne(idx int, value string) *chem.Descriptors {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		e.logger.Warn("empty SMILES", logging.Int("row", idx))
		return nil
	}

	mol, err := chem.Parse(trimmed)
	if err != nil {
		e.logger.Warn("invalid SMILES",
			logging.Int("row", idx),
			logging.String("smiles", trimmed),
			logging.Err(err))
		return nil
	}

	desc := chem.ComputeDescriptors(mol)
	return &desc
}

// extractParallel fans rows out over a bounded worker pool.  Workers write
// only to their own index slot, so the reassembled result is identical to the
// sequential path.
func (e *Extractor) extractParallel(ctx context.Context, values []string, results []*chem.Descriptors) *errors.AppError {
	indices := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < e.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = e.extractOne(i, values[i])
			}
		}()
	}

	var cancelled error
feed:
	for i := range values {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break feed
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case indices <- i:
		}
	}
	close(indices)
	wg.Wait()

	if cancelled != nil {
		return errors.Wrap(cancelled, errors.CodeUnknown, "extraction cancelled")
	}
	return nil
}
