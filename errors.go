package ssebench

import (
	"errors"
	"fmt"

	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/benchmark"
	"github.com/giorgiosiniscalchi/clusion-sse-benchmark/scheme"
)

var (
	// ErrEmptyIndex is returned when the keyword index has no entries.
	ErrEmptyIndex = errors.New("keyword index is empty")

	// ErrNoUsableSchemes is returned when every requested scheme was
	// skipped during construction.
	ErrNoUsableSchemes = errors.New("no usable schemes")
)

// ErrUnknownScheme indicates a scheme name that matched no variant.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownScheme struct {
	Name  string
	cause error
}

func (e *ErrUnknownScheme) Error() string {
	return fmt.Sprintf("unknown scheme: %q", e.Name)
}

func (e *ErrUnknownScheme) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var uv *scheme.ErrUnknownVariant
	if errors.As(err, &uv) {
		return &ErrUnknownScheme{Name: uv.Name, cause: err}
	}

	if errors.Is(err, benchmark.ErrNoSchemes) {
		return fmt.Errorf("%w: %w", ErrNoUsableSchemes, err)
	}

	return err
}
