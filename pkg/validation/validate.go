package validation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/datacop/datacop/pkg/dataset"
	"github.com/datacop/datacop/pkg/history"
	"github.com/datacop/datacop/pkg/logger"
	"github.com/datacop/datacop/pkg/statement"
)

// Severity levels conventionally used in validation documents. Severity is
// opaque to the statement engine; only the comparison against the exception
// level matters here.
const (
	SeverityMinimal  = 1
	SeverityWarning  = 3
	SeverityCritical = 5
)

// DefaultExceptionLevel fails a run only on critical statements unless
// configured otherwise.
const DefaultExceptionLevel = SeverityCritical

// Document is an in-memory validation document: a named list of items.
// Callers own any on-disk serialization of documents.
type Document struct {
	Name  string
	Items []Item
}

// Item scopes the dataset to a set of columns and lists the statements to
// evaluate against that scope. An empty scope means the whole table.
type Item struct {
	Scope      []string
	Statements []statement.Options
}

// StatementResult is one statement's outcome within a run.
type StatementResult struct {
	Type     string
	Severity int
	Detail   statement.Report
	Result   bool
}

// ItemResult groups the outcomes of one item.
type ItemResult struct {
	Scope      []string
	Statements []StatementResult
}

// Result aggregates a whole validation run.
type Result struct {
	RunID     string
	Document  string
	Timestamp time.Time
	Items     []ItemResult

	Passed                int
	Failed                int
	HighestFailedSeverity int

	exceptionLevel int
}

// Err reports a validation failure when any failed statement's severity
// reached the exception level. A run with only lower-severity failures
// returns nil, letting callers treat those as warnings.
func (r *Result) Err() error {
	if r.Failed > 0 && r.HighestFailedSeverity >= r.exceptionLevel {
		return fmt.Errorf("%w: %d of %d statements failed (highest severity %d)",
			ErrValidationFailed, r.Failed, r.Passed+r.Failed, r.HighestFailedSeverity)
	}
	return nil
}

// Option configures a validation run.
type Option func(*runner)

type runner struct {
	log            *slog.Logger
	reader         history.Reader
	writer         history.Writer
	exceptionLevel int
}

// WithLogger sets the logger for the run. The default logger discards
// nothing but writes JSON to stdout.
func WithLogger(log *slog.Logger) Option {
	return func(r *runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithHistoryReader lets statement options resolve series references
// against past runs.
func WithHistoryReader(reader history.Reader) Option {
	return func(r *runner) { r.reader = reader }
}

// WithHistoryWriter appends the run's record to the log once the run
// completes.
func WithHistoryWriter(writer history.Writer) Option {
	return func(r *runner) { r.writer = writer }
}

// WithHistory wires a store as both reader and writer.
func WithHistory(store *history.Store) Option {
	return func(r *runner) {
		r.reader = store
		r.writer = store
	}
}

// WithExceptionLevel sets the severity at which a failed statement turns
// into a Result.Err failure.
func WithExceptionLevel(level int) Option {
	return func(r *runner) { r.exceptionLevel = level }
}

// Validate evaluates every statement of every item in the document against
// the scoped dataset. It returns an error when the run itself cannot
// proceed (unknown column, bad configuration); data-quality failures are
// reported through the Result.
func Validate(ctx context.Context, ds *dataset.Dataset, doc Document, opts ...Option) (*Result, error) {
	if len(doc.Items) == 0 {
		return nil, ErrEmptyDocument
	}

	r := &runner{
		log:            logger.New(),
		exceptionLevel: DefaultExceptionLevel,
	}
	for _, opt := range opts {
		opt(r)
	}

	rec := history.NewRecord(doc.Name)
	result := &Result{
		RunID:          rec.RunID,
		Document:       doc.Name,
		Timestamp:      rec.Timestamp,
		exceptionLevel: r.exceptionLevel,
	}

	log := r.log.With(logger.Document(doc.Name), logger.RunID(rec.RunID))
	log.InfoContext(ctx, "validation started", slog.Int("items", len(doc.Items)))

	for i, item := range doc.Items {
		scope := ds
		if len(item.Scope) > 0 {
			var err error
			scope, err = ds.Select(item.Scope...)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}

		itemResult := ItemResult{Scope: item.Scope}
		logItem := history.Item{Scope: item.Scope}

		for j, stOpts := range item.Statements {
			severity, err := severityOf(stOpts)
			if err != nil {
				return nil, fmt.Errorf("item %d, statement %d: %w", i, j, err)
			}

			st, err := statement.New(ctx, stOpts, r.reader)
			if err != nil {
				return nil, fmt.Errorf("item %d, statement %d: %w", i, j, err)
			}

			outcome, err := statement.Run(st, scope)
			if err != nil {
				return nil, fmt.Errorf("item %d, statement %q: %w", i, st.Name(), err)
			}

			itemResult.Statements = append(itemResult.Statements, StatementResult{
				Type:     st.Name(),
				Severity: severity,
				Detail:   outcome.Detail,
				Result:   outcome.Result,
			})
			logItem.Statements = append(logItem.Statements, history.Statement{
				Type:   st.Name(),
				Detail: outcome.Detail,
				Result: outcome.Result,
			})

			if outcome.Result {
				result.Passed++
				log.DebugContext(ctx, "statement passed",
					logger.Scope(item.Scope), logger.StatementType(st.Name()))
			} else {
				result.Failed++
				if severity > result.HighestFailedSeverity {
					result.HighestFailedSeverity = severity
				}
				log.WarnContext(ctx, "statement failed",
					logger.Scope(item.Scope), logger.StatementType(st.Name()),
					slog.Int("severity", severity), slog.Any("detail", outcome.Detail))
			}
		}

		result.Items = append(result.Items, itemResult)
		rec.Items = append(rec.Items, logItem)
	}

	if r.writer != nil {
		if err := r.writer.Append(ctx, rec); err != nil {
			return nil, fmt.Errorf("append history record: %w", err)
		}
	}

	log.InfoContext(ctx, "validation finished",
		slog.Int("passed", result.Passed), slog.Int("failed", result.Failed))
	return result, nil
}

func severityOf(opts statement.Options) (int, error) {
	raw, ok := opts["severity"]
	if !ok || raw == nil {
		return SeverityCritical, nil
	}
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidSeverity, v)
		}
		return v, nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidSeverity, v)
		}
		return int(v), nil
	case float64:
		if v < 0 || v != float64(int(v)) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidSeverity, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrInvalidSeverity, raw)
	}
}
