package history

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"

	"github.com/montanaflynn/stats"
)

// seriesRef recognizes the one supported option template: a single series
// reference with an optional aggregate filter. Single and double quotes are
// both accepted around the column and statistic names.
var seriesRef = regexp.MustCompile(
	`^\s*\{\{\s*series\(\s*['"]([^'"]+)['"]\s*,\s*['"]([^'"]+)['"]\s*\)\s*(?:\|\s*([a-z]+)\s*)?\}\}\s*$`)

// Renderer resolves series references in string statement options. Strings
// that do not match the reference syntax pass through unchanged, so plain
// option values never need escaping.
type Renderer struct {
	reader Reader
}

// NewRenderer creates a renderer backed by the given log reader. A nil
// reader is allowed; rendering a series reference then fails with
// ErrNoReader while plain strings still pass through.
func NewRenderer(reader Reader) *Renderer {
	return &Renderer{reader: reader}
}

// Render resolves a possible series reference in s. Without a filter the
// series renders as a JSON array; with a filter as a single number.
func (r *Renderer) Render(ctx context.Context, s string) (string, error) {
	m := seriesRef.FindStringSubmatch(s)
	if m == nil {
		return s, nil
	}
	if r == nil || r.reader == nil {
		return "", ErrNoReader
	}
	column, statistic, filter := m[1], m[2], m[3]

	series, err := Series(ctx, r.reader, column, statistic)
	if err != nil {
		return "", err
	}

	if filter == "" {
		data, err := json.Marshal(series)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	v, err := applyFilter(filter, series)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

func applyFilter(filter string, series []float64) (float64, error) {
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}
	switch filter {
	case "last":
		return series[len(series)-1], nil
	case "mean":
		return stats.Mean(series)
	case "min":
		return stats.Min(series)
	case "max":
		return stats.Max(series)
	case "sum":
		return stats.Sum(series)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, filter)
	}
}
