package statement

import (
	"context"
	"fmt"
	"sync"

	"github.com/datacop/datacop/pkg/dataset"
	"github.com/datacop/datacop/pkg/history"
)

// Definition describes one statement kind: its registry name, the option
// keys it accepts beyond the universal ones, whether it is table-only, a
// constructor over validated and template-resolved options, and an optional
// profiler that infers a passing configuration from sample data.
type Definition struct {
	Name            string
	TableOnly       bool
	ExpectedOptions []string
	New             func(opts Options) (Statement, error)
	Profile         func(ds *dataset.Dataset) (Options, error)
}

var registry = struct {
	sync.RWMutex
	defs map[string]Definition
}{defs: make(map[string]Definition)}

// Register adds a statement kind to the registry. Registration is explicit:
// there is no open-ended subclassing, only named variants behind the shared
// Statement interface.
func Register(def Definition) error {
	if def.Name == "" || def.New == nil {
		return fmt.Errorf("%w: definition needs a name and a constructor", ErrInvalidOption)
	}
	registry.Lock()
	defer registry.Unlock()
	if _, exists := registry.defs[def.Name]; exists {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, def.Name)
	}
	registry.defs[def.Name] = def
	return nil
}

func lookup(name string) (Definition, error) {
	registry.RLock()
	defer registry.RUnlock()
	def, ok := registry.defs[name]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownStatement, name)
	}
	return def, nil
}

// New constructs the statement named by the "type" option. Option keys are
// validated against the kind's whitelist, then every string option passes
// through the history renderer backed by reader (which may be nil when no
// option references past results). Construction is the only point that may
// touch I/O; Report and Result never do.
func New(ctx context.Context, opts Options, reader history.Reader) (Statement, error) {
	name, err := opts.stringOption("type", "")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingOption, "type")
	}

	def, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if err := opts.validateKeys(def.Name, def.ExpectedOptions); err != nil {
		return nil, err
	}

	resolved, err := opts.resolveTemplates(ctx, history.NewRenderer(reader))
	if err != nil {
		return nil, err
	}
	return def.New(resolved)
}

// Profile runs the named statement kind's profiler against a sample
// dataset, producing options the sample would pass.
func Profile(name string, ds *dataset.Dataset) (Options, error) {
	def, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if def.Profile == nil {
		return nil, fmt.Errorf("%w: %q", ErrProfileUnsupported, name)
	}
	return def.Profile(ds)
}

// Definitions returns the registered statement kinds, for callers that
// enumerate profilers or validate documents ahead of time.
func Definitions() []Definition {
	registry.RLock()
	defer registry.RUnlock()
	defs := make([]Definition, 0, len(registry.defs))
	for _, def := range registry.defs {
		defs = append(defs, def)
	}
	return defs
}

func mustRegister(def Definition) {
	if err := Register(def); err != nil {
		panic(err)
	}
}

func init() {
	mustRegister(Definition{
		Name: "base_statement",
		New:  newBase,
	})
	mustRegister(Definition{
		Name:            "unique",
		ExpectedOptions: []string{"at_least_%"},
		New:             newUnique,
		Profile:         profileUnique,
	})
	mustRegister(Definition{
		Name:            "not_null",
		ExpectedOptions: []string{"at_least_%", "at_most_%", "multicolumn_logic"},
		New:             newNotNull,
		Profile:         profileNotNull,
	})
	mustRegister(Definition{
		Name:            "row_count",
		TableOnly:       true,
		ExpectedOptions: []string{"min", "max"},
		New:             newRowCount,
		Profile:         profileRowCount,
	})
	mustRegister(Definition{
		Name: "contain",
		ExpectedOptions: []string{
			"rule", "values", "parser",
			"occurrences_per_value", "min_occurrences", "max_occurrences",
			"verbose",
		},
		New:     newContain,
		Profile: profileContain,
	})
	mustRegister(Definition{
		Name: "statistic_in_interval",
		ExpectedOptions: []string{
			"statistic",
			"<", "<=", ">", ">=", "==", "!=",
			"combination_logic", "atol", "rtol",
		},
		New: newStatisticInInterval,
	})
	mustRegister(Definition{
		Name:            "match_regex",
		ExpectedOptions: []string{"pattern", "at_least_%"},
		New:             newMatchRegex,
	})
}
