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

package scaerrors

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// CodeOK means no error; returned on success
	CodeOK Code = 0

	// CodeCancelled means the operation was cancelled, typically by the caller.
	CodeCancelled Code = 1

	// CodeUnknown means an unknown error. Errors raised by components that do
	// not return enough error information may be converted to this error.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the caller specified an invalid argument, for
	// example the wrong number of arguments for an operation.
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means the deadline expired before the operation
	// could complete.
	CodeDeadlineExceeded Code = 4

	// CodeNotFound means a component, service, reference or operation was not
	// found.
	CodeNotFound Code = 5

	// CodeFailedPrecondition means the operation was rejected because the
	// runtime is not in a state required for the operation's execution, for
	// example invoking a proxy before the runtime was started.
	CodeFailedPrecondition Code = 9

	// CodeUnimplemented means the operation is not implemented by the target
	// component.
	CodeUnimplemented Code = 12

	// CodeInternal means some invariants expected by the runtime have been
	// broken. This error code is reserved for serious errors.
	CodeInternal Code = 13

	// CodeServiceUnavailable means the wire has no usable target: the service
	// was not found or is not started anywhere in the domain.
	CodeServiceUnavailable Code = 14

	// CodeActivationFailed means a composite could not be activated because
	// of a configuration problem. Activation failures abort startup.
	CodeActivationFailed Code = 100

	// CodeUnresolvableTarget means the domain has no record of the target
	// service at all; it was never contributed to the domain.
	CodeUnresolvableTarget Code = 101

	// CodeInstanceCreationFailed means a component instance could not be
	// constructed or initialized.
	CodeInstanceCreationFailed Code = 102

	// CodeConversationEnded means a call was made through a conversation that
	// has already ended.
	CodeConversationEnded Code = 103

	// CodeNoActiveConversation means a conversational operation was requested
	// but no conversation has been started.
	CodeNoActiveConversation Code = 104
)

var (
	_codeToString = map[Code]string{
		CodeOK:                     "ok",
		CodeCancelled:              "cancelled",
		CodeUnknown:                "unknown",
		CodeInvalidArgument:        "invalid-argument",
		CodeDeadlineExceeded:       "deadline-exceeded",
		CodeNotFound:               "not-found",
		CodeFailedPrecondition:     "failed-precondition",
		CodeUnimplemented:          "unimplemented",
		CodeInternal:               "internal",
		CodeServiceUnavailable:     "service-unavailable",
		CodeActivationFailed:       "activation-failed",
		CodeUnresolvableTarget:     "unresolvable-target",
		CodeInstanceCreationFailed: "instance-creation-failed",
		CodeConversationEnded:      "conversation-ended",
		CodeNoActiveConversation:   "no-active-conversation",
	}
	_stringToCode = map[string]Code{
		"ok":                       CodeOK,
		"cancelled":                CodeCancelled,
		"unknown":                  CodeUnknown,
		"invalid-argument":         CodeInvalidArgument,
		"deadline-exceeded":        CodeDeadlineExceeded,
		"not-found":                CodeNotFound,
		"failed-precondition":      CodeFailedPrecondition,
		"unimplemented":            CodeUnimplemented,
		"internal":                 CodeInternal,
		"service-unavailable":      CodeServiceUnavailable,
		"activation-failed":        CodeActivationFailed,
		"unresolvable-target":      CodeUnresolvableTarget,
		"instance-creation-failed": CodeInstanceCreationFailed,
		"conversation-ended":       CodeConversationEnded,
		"no-active-conversation":   CodeNoActiveConversation,
	}
)

// Code represents the type of error for an invocation or an activation.
//
// Codes below 100 follow the usual RPC status code numbering; codes from 100
// on are specific to the assembly runtime.
type Code int

// String returns the the string representation of the Code.
func (c Code) String() string {
	s, ok := _codeToString[c]
	if ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	i, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = i
	return nil
}
