package view

import (
	"errors"
	"fmt"
)

// SectionFallback is shown in place of a section that failed to build.
const SectionFallback = "Error parsing data"

// ErrSectionFailed wraps the failure of a single section.
var ErrSectionFailed = errors.New("section failed")

// Section is an independently built part of a plan. A failing section carries Fallback and
// the failure, and never affects its siblings.
type Section[T any] struct {
	Value    T      `json:"value,omitempty"`
	Failed   bool   `json:"failed,omitempty"`
	Fallback string `json:"fallback,omitempty"`
	Err      error  `json:"-"`
}

// buildSection runs build and contains its error or panic.
func buildSection[T any](name string, build func() (T, error)) (s Section[T]) {
	defer func() {
		if r := recover(); r != nil {
			s = failedSection[T](fmt.Errorf("%w: %s: panic: %v", ErrSectionFailed, name, r))
		}
	}()

	v, err := build()
	if err != nil {
		return failedSection[T](fmt.Errorf("%w: %s: %w", ErrSectionFailed, name, err))
	}

	return Section[T]{Value: v}
}

func failedSection[T any](err error) Section[T] {
	return Section[T]{Failed: true, Fallback: SectionFallback, Err: err}
}
