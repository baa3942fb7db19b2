package bitmatrix

import "errors"

// ErrInvalidDimensions indicates that requested matrix dimensions are
// non-positive.
var ErrInvalidDimensions = errors.New("bitmatrix: dimensions must be > 0")

// ErrShapeMismatch indicates incompatible operand shapes in Product or
// ColMul. A programmer error: callers are expected to pass conforming
// shapes, so the public entry points panic rather than return this
// sentinel. It exists for documentation and for any future boundary that
// wants to validate before calling.
var ErrShapeMismatch = errors.New("bitmatrix: shape mismatch")
