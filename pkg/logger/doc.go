// Package logger builds the slog.Logger used across this module, with
// text/json output formats and defaults driven by environment variables.
//
// # Usage
//
//	log := logger.New(logger.WithFormat(logger.FormatText))
//
//	// or fully from the environment (DATACOP_LOG_LEVEL, DATACOP_LOG_FORMAT)
//	log, err := logger.NewFromEnv()
//
// The attribute helpers (Document, RunID, Scope, StatementType, Error) keep
// log keys consistent between the validation runner and callers that log
// around it.
package logger
