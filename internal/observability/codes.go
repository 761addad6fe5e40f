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

package observability

import "go.uber.org/sca/scaerrors"

type fault int

const (
	unknownFault fault = iota
	clientFault
	serverFault
)

// faultFromCode determines whether the code blames the caller, the callee,
// or neither.
func faultFromCode(code scaerrors.Code) fault {
	switch code {
	case scaerrors.CodeCancelled,
		scaerrors.CodeInvalidArgument,
		scaerrors.CodeNotFound,
		scaerrors.CodeFailedPrecondition,
		scaerrors.CodeUnimplemented,
		scaerrors.CodeConversationEnded,
		scaerrors.CodeNoActiveConversation:
		return clientFault

	case scaerrors.CodeUnknown,
		scaerrors.CodeDeadlineExceeded,
		scaerrors.CodeInternal,
		scaerrors.CodeServiceUnavailable,
		scaerrors.CodeActivationFailed,
		scaerrors.CodeUnresolvableTarget,
		scaerrors.CodeInstanceCreationFailed:
		return serverFault
	}

	return unknownFault
}
