// Package models defines the client-side data model: credentials, the
// authenticated session, meals and user preferences.
package models

import (
	"errors"
	"strings"
)

// ErrValidation is matched by every client-side input check failure.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the problems found in one value.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

type problems []string

func (p *problems) check(ok bool, msg string) {
	if !ok {
		*p = append(*p, msg)
	}
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return &ValidationError{Problems: p}
}
