package domain

import "errors"

var (
	ErrNetwork         = errors.New("failed to retrieve saved profiles")
	ErrEmptyList       = errors.New("no saved profiles found")
	ErrSelectionEmpty  = errors.New("no profile selected")
	ErrSnapshotMissing = errors.New("selected profiles could not be resolved")
	ErrSurfaceClosed   = errors.New("selection surface is not open")
)
