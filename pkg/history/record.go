package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one validation run as persisted for future reference.
type Record struct {
	RunID     string    `yaml:"run_id" json:"run_id"`
	Document  string    `yaml:"document" json:"document"`
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Items     []Item    `yaml:"items" json:"items"`
}

// Item is the logged outcome of one validation item.
type Item struct {
	Scope      []string    `yaml:"scope" json:"scope"`
	Statements []Statement `yaml:"statements" json:"statements"`
}

// Statement is the logged outcome of one statement evaluation: the
// statement type, its report detail and the verdict.
type Statement struct {
	Type   string         `yaml:"type" json:"type"`
	Detail map[string]any `yaml:"detail" json:"detail"`
	Result bool           `yaml:"result" json:"result"`
}

// NewRecord starts a record for the named validation document, stamped with
// a fresh run id and the current time.
func NewRecord(document string) Record {
	return Record{
		RunID:     uuid.NewString(),
		Document:  document,
		Timestamp: time.Now().UTC(),
	}
}

// Reader provides past validation records, oldest first.
type Reader interface {
	Records(ctx context.Context) ([]Record, error)
}

// Writer appends a validation record to the log.
type Writer interface {
	Append(ctx context.Context, rec Record) error
}

// Series extracts the ordered historical values of a statistic for a column
// from past records: for every record, every item scoped to exactly that
// column contributes the numeric value the statistic had in its statement
// reports. Non-numeric detail values are skipped.
func Series(ctx context.Context, r Reader, column, statistic string) ([]float64, error) {
	records, err := r.Records(ctx)
	if err != nil {
		return nil, err
	}

	var series []float64
	for _, rec := range records {
		for _, item := range rec.Items {
			if len(item.Scope) != 1 || item.Scope[0] != column {
				continue
			}
			for _, st := range item.Statements {
				if v, ok := asFloat(st.Detail[statistic]); ok {
					series = append(series, v)
				}
			}
		}
	}
	return series, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
