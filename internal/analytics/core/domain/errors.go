package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange         = errors.New("invalid time range")
	ErrUnsupportedMode      = errors.New("unsupported granularity mode")
	ErrUnsupportedSource    = errors.New("unsupported metric source")
	ErrUnknownEntity        = errors.New("unknown entity type")
	ErrUnsupportedOperation = errors.New("operation not supported for entity")
	ErrUnknownMetric        = errors.New("unknown ranking metric")
	ErrInvalidLimit         = errors.New("invalid limit")
	ErrInvalidThresholds    = errors.New("archive threshold must be lower than delete threshold")
)

// StoreQueryError wraps any failure coming back from the read port.
type StoreQueryError struct {
	Op     string
	Source string
	Err    error
}

func (e *StoreQueryError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("store query %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store query %s(%s) failed: %v", e.Op, e.Source, e.Err)
}

func (e *StoreQueryError) Unwrap() error {
	return e.Err
}
