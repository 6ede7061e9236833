package domain

import "errors"

// ErrSnapshotNotFound is returned when a snapshot key has never been written.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrUnknownStep is returned when a step ID is not part of the flow.
var ErrUnknownStep = errors.New("unknown step")

// ErrUnknownField is returned when a field path is not declared in any schema of the step.
var ErrUnknownField = errors.New("unknown field")

// ErrNavigationBlocked is returned by a forward transition attempted while the gate is closed.
var ErrNavigationBlocked = errors.New("navigation blocked by validation")
