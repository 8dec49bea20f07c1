package core

import "errors"

// Errors reported by the engine and its configuration.
var (
	// ErrEmptyInput is returned when the raw input is blank.
	ErrEmptyInput = errors.New("please provide query requirements or SQL to process")
	// ErrUnsupportedQueryType indicates a query type outside the supported set.
	ErrUnsupportedQueryType = errors.New("unsupported query type")
	// ErrUnknownDatabase indicates a database outside the supported set.
	ErrUnknownDatabase = errors.New("unknown database")
	// ErrInvalidIndentSize indicates a non-positive indent size.
	ErrInvalidIndentSize = errors.New("indent size must be a positive integer")
	// ErrBuildFailed is the fallback message for build failures without a message.
	ErrBuildFailed = errors.New("failed to build SQL query")
)
