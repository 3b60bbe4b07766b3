package model

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter indicates a caller-supplied parameter outside the
// valid range for the requested computation. Validation failures are fatal
// to the call; no partial computation is attempted.
var ErrInvalidParameter = errors.New("invalid parameter")

// ErrSamplingImpossible indicates a request for more distinct positions
// than the sequence holds. It is a specialization of ErrInvalidParameter:
// errors.Is(err, ErrInvalidParameter) holds for every ErrSamplingImpossible.
var ErrSamplingImpossible = fmt.Errorf("sampling impossible: %w", ErrInvalidParameter)
