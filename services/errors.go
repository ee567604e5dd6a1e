// Package services holds the business logic. Every operation takes a context
// and returns an explicit error classified into one of four kinds, which the
// HTTP layer maps onto status codes.
package services

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// KindNotFound: the referenced entity does not exist.
	KindNotFound ErrorKind = iota + 1
	// KindInvalidState: a business rule was violated (insufficient stock,
	// empty order, duplicate review, illegal status transition, missing
	// required field).
	KindInvalidState
	// KindForbidden: the requester is neither the owner nor an admin.
	KindForbidden
	// KindUpstream: the external payment processor failed.
	KindUpstream
)

// Error is a classified service failure. Its message is user facing.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Msg: fmt.Sprintf(format, args...)}
}

func Forbiddenf(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Upstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

func kindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// Classify returns the service error if err carries one.
func Classify(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func IsNotFound(err error) bool     { return kindOf(err) == KindNotFound }
func IsInvalidState(err error) bool { return kindOf(err) == KindInvalidState }
func IsForbidden(err error) bool    { return kindOf(err) == KindForbidden }
func IsUpstream(err error) bool     { return kindOf(err) == KindUpstream }
