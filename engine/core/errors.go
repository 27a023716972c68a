package core

import (
	"errors"
)

var (
	// ErrLoadFailure is returned when an image, scene or asset file cannot be
	// read or decoded.
	ErrLoadFailure = errors.New("resource could not be loaded")
	// ErrUnsupportedFormat is returned for images that are neither RGB nor RGBA.
	ErrUnsupportedFormat = errors.New("unsupported image channel count")
	// ErrCapacityExceeded is returned when every texture unit is already taken.
	ErrCapacityExceeded = errors.New("texture unit capacity exceeded")
	// ErrLookupMiss is returned when a tag is not registered.
	ErrLookupMiss = errors.New("tag not registered")
	// ErrMissingUniform is returned when the shader program does not expose a binding.
	ErrMissingUniform = errors.New("shader program does not expose uniform")
	// ErrUnknownShape is returned for shape names outside the primitive library.
	ErrUnknownShape = errors.New("unknown shape")
	// ErrInvalidConfig is returned for malformed configuration and scene files.
	ErrInvalidConfig = errors.New("invalid configuration")
)
