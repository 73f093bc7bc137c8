package footprint

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a required scalar is not
	// strictly positive.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidWallThickness is returned when walls of the requested
	// thickness would leave no interior in some prism.
	ErrInvalidWallThickness = errors.New("invalid wall thickness")

	// ErrInvalidArmWidth is returned when an arm is wider than the side of
	// the central block it attaches to.
	ErrInvalidArmWidth = errors.New("invalid arm width")
)

// DimensionError records which scalar failed validation.
type DimensionError struct {
	Field string
	Value float64
	Err   error // one of the sentinels above
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %s is %.4g", e.Err, e.Field, e.Value)
}

func (e *DimensionError) Unwrap() error {
	return e.Err
}

// Warning is an advisory validation finding. It never blocks a scenario.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	if w.Field == "" {
		return w.Message
	}
	return w.Field + ": " + w.Message
}
