// Copyright ©2024 The VecStat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numerr defines the error taxonomy shared across vecstat's core
// packages.
package numerr

import (
	"errors"
	"fmt"
)

// Kind classifies a core error per the propagation policy: InvalidInput and
// CancelledExtraction are unrecoverable and abort the extraction;
// FitterInapplicable and VerificationFailed are never surfaced as errors —
// they are internal control values the adaptive pipeline reacts to.
type Kind int

const (
	// InvalidInput covers empty matrices, ragged matrices, zero-length
	// dimensions, and non-finite values that leave a fitter undefined.
	InvalidInput Kind = iota
	// NumericalBreakdown marks a division-by-zero or log(0) that escaped
	// a guarded codepath. It should be internally unreachable; if it
	// surfaces, that is a bug, so it is raised as a panic, not an error
	// (see Breakdown).
	NumericalBreakdown
	// CancelledExtraction marks an extraction aborted by a cancellation
	// signal; partial results are discarded.
	CancelledExtraction
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NumericalBreakdown:
		return "numerical breakdown"
	case CancelledExtraction:
		return "cancelled extraction"
	default:
		return "unknown error kind"
	}
}

// Error wraps a Kind with contextual detail.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("vecstat: %s: %s", e.Kind, e.Msg)
}

// New constructs an *Error for the given kind.
func New(k Kind, format string, args ...interface{}) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err (or any error it wraps) is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// Breakdown panics with a NumericalBreakdown detail. It is for
// conditions the spec documents as "internally unreachable" guarded
// codepaths (division by zero, log of zero) that would indicate a bug in
// the guard itself if ever reached.
func Breakdown(format string, args ...interface{}) {
	panic(New(NumericalBreakdown, format, args...))
}
