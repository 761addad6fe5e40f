// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package scaerrors defines the errors surfaced by the assembly runtime.
//
// Validation problems found while building the assembly model are not errors
// in this sense; they are accumulated on a monitor. Errors in this package are
// either activation failures, which abort composite startup, or invocation
// failures, which travel back to the caller as faults.
package scaerrors

import (
	"bytes"
	"errors"
	"fmt"
)

// Newf returns a new Status.
//
// The Code should never be CodeOK, if it is, this will return nil.
func Newf(code Code, format string, args ...interface{}) *Status {
	if code == CodeOK {
		return nil
	}

	var err error
	if len(args) == 0 {
		err = errors.New(format)
	} else {
		err = fmt.Errorf(format, args...)
	}

	return &Status{
		code: code,
		err:  err,
	}
}

// Wrap returns a new Status with the given code whose cause is err. The
// message of err is prefixed with the formatted message.
//
// The cause stays reachable through errors.Unwrap, errors.Is and errors.As.
func Wrap(code Code, err error, format string, args ...interface{}) *Status {
	if code == CodeOK || err == nil {
		return nil
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Status{
		code: code,
		err:  &wrapError{msg: msg, err: err},
	}
}

type scaError interface {
	SCAError() *Status
}

// FromError returns the Status for the provided error.
//
// If the error:
//  - is nil, return nil
//  - is a 'Status', return the 'Status'
//  - has a 'SCAError() *Status' method, returns the 'Status'
// Otherwise, return a wrapped error with code 'CodeUnknown'.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}

	if st, ok := fromError(err); ok {
		return st
	}

	return &Status{
		code: CodeUnknown,
		err:  &wrapError{err: err},
	}
}

func fromError(err error) (st *Status, ok bool) {
	if errors.As(err, &st) {
		return st, true
	}

	var serr scaError
	if errors.As(err, &serr) {
		return serr.SCAError(), true
	}
	return nil, false
}

// IsStatus returns whether the provided error is a Status, or has a
// SCAError() function to represent the error as a Status. This includes
// wrapped errors.
//
// This is false if the error is nil.
func IsStatus(err error) bool {
	_, ok := fromError(err)
	return ok
}

// HasCode reports whether err carries a Status with the given code anywhere
// in its chain.
func HasCode(err error, code Code) bool {
	st, ok := fromError(err)
	return ok && st.Code() == code
}

// Status represents a runtime error.
type Status struct {
	code Code
	err  error
}

// Unwrap supports errors.Unwrap.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return errors.Unwrap(s.err)
}

// Code returns the error code for this Status.
func (s *Status) Code() Code {
	if s == nil {
		return CodeOK
	}
	return s.code
}

// Message returns the error message for this Status.
func (s *Status) Message() string {
	if s == nil {
		return ""
	}
	return s.err.Error()
}

// Error implements the error interface.
func (s *Status) Error() string {
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(s.code.String())
	if s.err != nil && s.err.Error() != "" {
		_, _ = buffer.WriteString(` message:`)
		_, _ = buffer.WriteString(s.err.Error())
	}
	return buffer.String()
}

type wrapError struct {
	msg string
	err error
}

func (e *wrapError) Error() string {
	if e == nil {
		return ""
	}
	if e.err == nil {
		return e.msg
	}
	if e.msg == "" {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *wrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// InvalidArgumentErrorf returns a new Status with code CodeInvalidArgument
// by calling Newf(CodeInvalidArgument, format, args...).
func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidArgument, format, args...)
}

// NotFoundErrorf returns a new Status with code CodeNotFound
// by calling Newf(CodeNotFound, format, args...).
func NotFoundErrorf(format string, args ...interface{}) error {
	return Newf(CodeNotFound, format, args...)
}

// FailedPreconditionErrorf returns a new Status with code CodeFailedPrecondition
// by calling Newf(CodeFailedPrecondition, format, args...).
func FailedPreconditionErrorf(format string, args ...interface{}) error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// InternalErrorf returns a new Status with code CodeInternal
// by calling Newf(CodeInternal, format, args...).
func InternalErrorf(format string, args ...interface{}) error {
	return Newf(CodeInternal, format, args...)
}

// ServiceUnavailableErrorf returns a new Status with code
// CodeServiceUnavailable by calling Newf(CodeServiceUnavailable, format, args...).
func ServiceUnavailableErrorf(format string, args ...interface{}) error {
	return Newf(CodeServiceUnavailable, format, args...)
}

// ActivationErrorf returns a new Status with code CodeActivationFailed
// by calling Newf(CodeActivationFailed, format, args...).
func ActivationErrorf(format string, args ...interface{}) error {
	return Newf(CodeActivationFailed, format, args...)
}

// UnresolvableTargetErrorf returns a new Status with code
// CodeUnresolvableTarget by calling Newf(CodeUnresolvableTarget, format, args...).
func UnresolvableTargetErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnresolvableTarget, format, args...)
}

// ConversationEndedErrorf returns a new Status with code
// CodeConversationEnded by calling Newf(CodeConversationEnded, format, args...).
func ConversationEndedErrorf(format string, args ...interface{}) error {
	return Newf(CodeConversationEnded, format, args...)
}

// NoActiveConversationErrorf returns a new Status with code
// CodeNoActiveConversation by calling Newf(CodeNoActiveConversation, format, args...).
func NoActiveConversationErrorf(format string, args ...interface{}) error {
	return Newf(CodeNoActiveConversation, format, args...)
}

// IsActivationFailed returns true if err is a Status with code
// CodeActivationFailed.
func IsActivationFailed(err error) bool {
	return HasCode(err, CodeActivationFailed)
}

// IsServiceUnavailable returns true if err is a Status with code
// CodeServiceUnavailable.
func IsServiceUnavailable(err error) bool {
	return HasCode(err, CodeServiceUnavailable)
}

// IsUnresolvableTarget returns true if err is a Status with code
// CodeUnresolvableTarget.
func IsUnresolvableTarget(err error) bool {
	return HasCode(err, CodeUnresolvableTarget)
}

// IsInstanceCreationFailed returns true if err is a Status with code
// CodeInstanceCreationFailed.
func IsInstanceCreationFailed(err error) bool {
	return HasCode(err, CodeInstanceCreationFailed)
}

// IsConversationEnded returns true if err is a Status with code
// CodeConversationEnded.
func IsConversationEnded(err error) bool {
	return HasCode(err, CodeConversationEnded)
}

// IsNoActiveConversation returns true if err is a Status with code
// CodeNoActiveConversation.
func IsNoActiveConversation(err error) bool {
	return HasCode(err, CodeNoActiveConversation)
}
