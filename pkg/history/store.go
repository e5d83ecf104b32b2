package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/datacop/datacop/pkg/storage"
)

// Store reads and appends validation records through a storage backend.
// Records live under "<document>/<timestamp>-<run id>.yaml"; listing order
// therefore matches chronological order.
type Store struct {
	storage  storage.Storage
	document string
}

// NewStore creates a record store for the named validation document.
func NewStore(st storage.Storage, document string) *Store {
	return &Store{storage: st, document: document}
}

// Records implements Reader. Results are sorted oldest first.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	paths, err := s.storage.List(ctx, s.document+"/")
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	records := make([]Record, 0, len(paths))
	for _, path := range paths {
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") && !strings.HasSuffix(path, ".json") {
			continue
		}
		data, err := s.storage.Read(ctx, path)
		if err != nil {
			return nil, err
		}
		var rec Record
		// YAML is a superset of JSON, so one decoder covers both formats.
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecodeRecord, path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append implements Writer.
func (s *Store) Append(ctx context.Context, rec Record) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecodeRecord, err)
	}
	path := fmt.Sprintf("%s/%s-%s.yaml",
		s.document, rec.Timestamp.UTC().Format("20060102T150405Z"), rec.RunID)
	return s.storage.Write(ctx, path, data)
}
