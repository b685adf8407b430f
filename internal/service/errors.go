package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kubev2v/qpcr-planner/internal/handlers/validator"
	"github.com/kubev2v/qpcr-planner/internal/service/report/types"
)

type ErrInvalidConfiguration struct {
	error
	Fields []string
}

func NewErrInvalidConfiguration(fields []string) *ErrInvalidConfiguration {
	return &ErrInvalidConfiguration{
		error:  fmt.Errorf("invalid configuration: %s", strings.Join(fields, "; ")),
		Fields: fields,
	}
}

// fromValidationError lifts a validator failure into the service error.
func fromValidationError(err error) error {
	var invalid *validator.ErrInvalidConfiguration
	if errors.As(err, &invalid) {
		return NewErrInvalidConfiguration(invalid.Fields)
	}
	return fmt.Errorf("failed to validate configuration: %w", err)
}

type ErrInvalidDocument struct {
	error
}

func NewErrInvalidDocument(err error) *ErrInvalidDocument {
	return &ErrInvalidDocument{fmt.Errorf("bad request: %w", err)}
}

func (e *ErrInvalidDocument) Unwrap() error {
	return e.error
}

type ErrUnsupportedFormat struct {
	error
}

func NewErrUnsupportedFormat(format ReportFormat) *ErrUnsupportedFormat {
	return &ErrUnsupportedFormat{fmt.Errorf("unsupported report format: %s", format)}
}

// ErrNonFiniteVolume is returned by the renderers when a volume overflowed.
type ErrNonFiniteVolume = types.ErrNonFiniteVolume

// IsBadRequest reports whether err was caused by the caller's input.
func IsBadRequest(err error) bool {
	var (
		invalidCfg *ErrInvalidConfiguration
		invalidDoc *ErrInvalidDocument
		format     *ErrUnsupportedFormat
		nonFinite  *ErrNonFiniteVolume
	)
	return errors.As(err, &invalidCfg) || errors.As(err, &invalidDoc) || errors.As(err, &format) || errors.As(err, &nonFinite)
}
