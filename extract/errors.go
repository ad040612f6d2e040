package extract

import "errors"

var (
	// ErrUnknownFormat indicates no adapter matches the declared format.
	ErrUnknownFormat = errors.New("unknown source format")
)
