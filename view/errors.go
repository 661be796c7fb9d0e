package view

import "errors"

var (
	// ErrNoValue marks a Result that failed without a reason.
	ErrNoValue = errors.New("no value")
	// ErrDuplicateName is returned by NewRecord when two fields share a name.
	ErrDuplicateName = errors.New("duplicate field name")
	// ErrFingerprintCollision is returned by NewRecord when two distinct names
	// share a fingerprint.
	ErrFingerprintCollision = errors.New("fingerprint collision")
)
