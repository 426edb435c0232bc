package simulation

import "errors"

var (
	ErrSimulationNotFound = errors.New("simulation not found")
	ErrUnknownAFP         = errors.New("afp provider not present in the effective parameter version")

	// ErrSnapshotPersist - the breakdown was computed but the snapshot
	// could not be written. Kept distinct from computation errors so
	// callers can tell "could not compute" from "computed but not saved".
	ErrSnapshotPersist = errors.New("failed to persist simulation snapshot")
)
