package minwage

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidArgument is returned when a single-prefecture query is made
	// without a prefecture. No dataset is read in that case.
	ErrInvalidArgument = errors.New("minwage: prefecture name is required")

	// ErrDataUnavailable is returned when a dataset file is missing or unreadable.
	ErrDataUnavailable = errors.New("minwage: dataset unavailable")

	// ErrMalformedData is returned when a dataset file cannot be parsed
	// into wage records.
	ErrMalformedData = errors.New("minwage: malformed dataset")

	// ErrDataInconsistency is returned when the next dataset lists a
	// prefecture, not yet effective, that the current dataset lacks.
	ErrDataInconsistency = errors.New("minwage: datasets are inconsistent")
)

// LoadError describes a failure to load one epoch's dataset.
// Err wraps ErrDataUnavailable or ErrMalformedData.
type LoadError struct {
	Epoch Epoch
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("minwage: load %s dataset %q: %v", e.Epoch, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func unavailable(epoch Epoch, path string, err error) error {
	return &LoadError{Epoch: epoch, Path: path, Err: fmt.Errorf("%w: %w", ErrDataUnavailable, err)}
}

func malformed(epoch Epoch, path string, format string, args ...any) error {
	return &LoadError{Epoch: epoch, Path: path, Err: fmt.Errorf("%w: %s", ErrMalformedData, fmt.Sprintf(format, args...))}
}

// InconsistencyError reports a prefecture present in the next dataset
// with a future effective date but absent from the current dataset.
type InconsistencyError struct {
	Prefecture         Prefecture
	EffectiveStartDate time.Time
}

func (e *InconsistencyError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("minwage: %s is scheduled from %s but missing from the current dataset",
		e.Prefecture, e.EffectiveStartDate.Format(time.DateOnly))
}

func (e *InconsistencyError) Unwrap() error { return ErrDataInconsistency }
