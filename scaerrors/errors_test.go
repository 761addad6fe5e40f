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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewfOK(t *testing.T) {
	assert.Nil(t, Newf(CodeOK, "hello"))
}

func TestErrorsString(t *testing.T) {
	tests := []struct {
		desc string
		err  error
		want string
	}{
		{
			desc: "service unavailable",
			err:  ServiceUnavailableErrorf("service %q not found", "calc"),
			want: `code:service-unavailable message:service "calc" not found`,
		},
		{
			desc: "activation",
			err:  ActivationErrorf("no distributed binding"),
			want: "code:activation-failed message:no distributed binding",
		},
		{
			desc: "wrapped",
			err:  Wrap(CodeInstanceCreationFailed, errors.New("boom"), "could not create %q", "B"),
			want: `code:instance-creation-failed message:could not create "B": boom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestFromError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FromError(nil))
	})

	t.Run("status", func(t *testing.T) {
		st := Newf(CodeNotFound, "missing")
		assert.Equal(t, st, FromError(st))
	})

	t.Run("wrapped status", func(t *testing.T) {
		st := Newf(CodeConversationEnded, "ended")
		err := fmt.Errorf("calling: %w", st)
		assert.Equal(t, st, FromError(err))
		assert.True(t, IsConversationEnded(err))
	})

	t.Run("plain error", func(t *testing.T) {
		cause := errors.New("great sadness")
		st := FromError(cause)
		require.NotNil(t, st)
		assert.Equal(t, CodeUnknown, st.Code())
		assert.Equal(t, "great sadness", st.Message())
		assert.True(t, errors.Is(st, cause))
		assert.False(t, IsStatus(cause))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("init failed")
	err := Wrap(CodeInstanceCreationFailed, cause, "creating instance")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsInstanceCreationFailed(err))
	assert.Nil(t, Wrap(CodeInternal, nil, "nothing"))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		err  error
		pred func(error) bool
	}{
		{ActivationErrorf("x"), IsActivationFailed},
		{ServiceUnavailableErrorf("x"), IsServiceUnavailable},
		{UnresolvableTargetErrorf("x"), IsUnresolvableTarget},
		{ConversationEndedErrorf("x"), IsConversationEnded},
		{NoActiveConversationErrorf("x"), IsNoActiveConversation},
	}
	for _, tt := range tests {
		assert.True(t, tt.pred(tt.err), "predicate failed for %v", tt.err)
		assert.False(t, tt.pred(errors.New("other")))
	}
	assert.False(t, IsConversationEnded(NoActiveConversationErrorf("x")),
		"ended and not-started conversations must be distinguishable")
}

func TestCodeText(t *testing.T) {
	for code, s := range _codeToString {
		text, err := code.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, s, string(text))

		var got Code
		require.NoError(t, got.UnmarshalText([]byte(s)))
		assert.Equal(t, code, got)
	}

	_, err := Code(99).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "99", Code(99).String())

	var c Code
	assert.Error(t, c.UnmarshalText([]byte("nope")))
}
