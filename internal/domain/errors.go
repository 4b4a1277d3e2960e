package domain

import "errors"

var (
	ErrInvalidPuzzle    = errors.New("invalid puzzle")
	ErrPieceNotInFamily = errors.New("piece not in family")
	ErrNotDrafting      = errors.New("no solution draft in progress")
	ErrDrafting         = errors.New("solution draft in progress")
	ErrIncomplete       = errors.New("solution has unassigned cells")
	ErrVolumeMismatch   = errors.New("occupied cells do not match piece volume")
	ErrNotFound         = errors.New("puzzle not found")
)
