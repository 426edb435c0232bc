package params

import "errors"

var (
	// ErrParameterVersionNotFound - no version with effective_from <= the
	// requested date. Fatal for the requesting computation.
	ErrParameterVersionNotFound = errors.New("no parameter version effective at the requested date")

	// ErrStaleReference - no UF/UTM rate at or before the requested
	// date/month. Recoverable: callers may fall back to the configured
	// approximate constants, flagging the result.
	ErrStaleReference = errors.New("no reference rate available at or before the requested date")
)
