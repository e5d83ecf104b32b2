package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Document records the validation document name under the key "document".
func Document(name string) slog.Attr {
	return slog.String("document", name)
}

// RunID records the validation run identifier under the key "run_id".
func RunID(id string) slog.Attr {
	return slog.String("run_id", id)
}

// Scope records the columns a validation item targets under the key "scope".
func Scope(columns []string) slog.Attr {
	return slog.Any("scope", columns)
}

// StatementType records a statement's registry name under the key
// "statement".
func StatementType(name string) slog.Attr {
	return slog.String("statement", name)
}
