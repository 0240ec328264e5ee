// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddm

import "github.com/cpmech/gosl/io"

// ErrKind classifies the failures of a decomposed run
type ErrKind int

const (
	// AssemblyFailure means the local equilibrium solve of one subdomain
	// returned a nonzero status; fatal for the whole run
	AssemblyFailure ErrKind = iota + 1

	// ContractViolation means a partition descriptor is missing required
	// fields; fatal at worker startup
	ContractViolation

	// ProtocolViolation means a worker received an unknown command; reported
	// back over the channel, recoverable by the coordinator
	ProtocolViolation

	// SingularInterfaceSystem means the assembled global Schur matrix is not
	// invertible; fatal at the dense-solve step
	SingularInterfaceSystem

	// ConvergenceNotReached means the Schwarz loop exhausted its iteration
	// budget; non-fatal, the last estimate remains available
	ConvergenceNotReached
)

// Error is a typed failure tied to one subdomain. Workers ship values of
// this type over their reply channel instead of dying unobserved.
type Error struct {
	Kind ErrKind // failure class
	Part int     // offending partition id; -1 when not tied to one
	Msg  string  // details
}

// Error returns the message
func (o *Error) Error() string {
	return io.Sf("%s (partition %d): %s", o.Kind.String(), o.Part, o.Msg)
}

// NewError returns a typed error for one subdomain
func NewError(kind ErrKind, part int, msg string, prm ...interface{}) *Error {
	return &Error{kind, part, io.Sf(msg, prm...)}
}

// String returns the name of the failure class
func (o ErrKind) String() string {
	switch o {
	case AssemblyFailure:
		return "assembly failure"
	case ContractViolation:
		return "contract violation"
	case ProtocolViolation:
		return "protocol violation"
	case SingularInterfaceSystem:
		return "singular interface system"
	case ConvergenceNotReached:
		return "convergence not reached"
	}
	return "unknown failure"
}

// KindOf extracts the failure class of err; 0 when err is not a typed Error
func KindOf(err error) ErrKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}
