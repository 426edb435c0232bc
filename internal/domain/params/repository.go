package params

import (
	"context"
	"time"
)

// ParameterRepository resolves the versioned legal constants. Versions are
// append-only; rows are never updated once published.
type ParameterRepository interface {
	// GetVersionForDate returns the latest version with
	// effective_from <= date, or ErrParameterVersionNotFound.
	GetVersionForDate(ctx context.Context, date time.Time) (ParameterVersion, error)
	CreateVersion(ctx context.Context, version ParameterVersion) (ParameterVersion, error)
	ListVersions(ctx context.Context) ([]ParameterVersion, error)
}

// ReferenceRepository resolves UF/UTM index values. UF is looked up by
// exact date falling back to the most recent earlier date; UTM must match
// its calendar month exactly. Both return ErrStaleReference when nothing
// is available.
type ReferenceRepository interface {
	GetUFAt(ctx context.Context, date time.Time) (UFRate, error)
	GetUTMFor(ctx context.Context, month time.Time) (UTMRate, error)
	UpsertUF(ctx context.Context, rate UFRate) error
	UpsertUTM(ctx context.Context, rate UTMRate) error
}
