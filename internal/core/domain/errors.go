package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfig         = errors.New("configuration error")
	ErrTargetNotFound = errors.New("target file not found")
	ErrExtraction     = errors.New("text extraction failed")
	ErrClassification = errors.New("classification failed")
	ErrJobNotFound    = errors.New("classification job not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrTemporary      = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
