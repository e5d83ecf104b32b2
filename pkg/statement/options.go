package statement

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/datacop/datacop/pkg/history"
)

// Options is a statement configuration as supplied by the caller: a mapping
// from option name to scalar, list or nested mapping.
type Options map[string]any

// universalOptions are accepted by every statement regardless of kind.
// severity and location are caller-defined and opaque to this package.
var universalOptions = []string{"type", "severity", "location"}

// validateKeys rejects any option key outside the statement's expected set
// plus the universal set.
func (o Options) validateKeys(name string, expected []string) error {
	allowed := make(map[string]struct{}, len(expected)+len(universalOptions))
	for _, k := range expected {
		allowed[k] = struct{}{}
	}
	for _, k := range universalOptions {
		allowed[k] = struct{}{}
	}

	var unexpected []string
	for k := range o {
		if _, ok := allowed[k]; !ok {
			unexpected = append(unexpected, k)
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	return fmt.Errorf("%w: %s does not accept %v (valid options: %v)",
		ErrUnexpectedOption, name, unexpected, expected)
}

// resolveTemplates passes every string-valued option through the history
// renderer. Rendered values that read as JSON scalars or arrays are
// reinterpreted so a resolved numeric threshold behaves like one declared
// literally; non-string options pass through unchanged.
func (o Options) resolveTemplates(ctx context.Context, renderer *history.Renderer) (Options, error) {
	resolved := make(Options, len(o))
	for key, value := range o {
		s, ok := value.(string)
		if !ok {
			resolved[key] = value
			continue
		}
		rendered, err := renderer.Render(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidOption, key, err)
		}
		if rendered == s {
			resolved[key] = value
			continue
		}
		var native any
		if err := json.Unmarshal([]byte(rendered), &native); err == nil {
			resolved[key] = native
		} else {
			resolved[key] = rendered
		}
	}
	return resolved, nil
}

// floatOption reads a numeric option, accepting integer forms and numeric
// strings (a rendered template may leave a string behind).
func (o Options) floatOption(key string, fallback float64) (float64, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %q must be numeric, got %T", ErrInvalidOption, key, raw)
	}
	return f, nil
}

// optionalFloat reads a numeric option that may be absent; nil result means
// unset.
func (o Options) optionalFloat(key string) (*float64, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return nil, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be numeric, got %T", ErrInvalidOption, key, raw)
	}
	return &f, nil
}

func (o Options) stringOption(key, fallback string) (string, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidOption, key, raw)
	}
	return s, nil
}

func (o Options) boolOption(key string, fallback bool) (bool, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return fallback, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q must be a boolean, got %T", ErrInvalidOption, key, raw)
	}
	return b, nil
}

// listOption reads a list option; a scalar is promoted to a one-element
// list, matching how the original accepted both forms.
func (o Options) listOption(key string) ([]any, bool) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return nil, false
	}
	switch v := raw.(type) {
	case []any:
		return v, true
	default:
		return []any{v}, true
	}
}

func (o Options) mapOption(key string) (map[string]any, bool, error) {
	raw, ok := o[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q must be a mapping, got %T", ErrInvalidOption, key, raw)
	}
	return m, true, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func toInt(v any) (int64, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
