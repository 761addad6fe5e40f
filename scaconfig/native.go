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

package scaconfig

import (
	"time"

	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/implementation/native"
)

// nativeConfig is the configuration of the native implementation type.
//
//   implementations:
//     native:
//       conversation:
//         maxAge: 1h
//         maxIdleTime: 10m
//         reapInterval: 30s
type nativeConfig struct {
	Conversation struct {
		MaxAge       time.Duration `config:"maxAge"`
		MaxIdleTime  time.Duration `config:"maxIdleTime"`
		ReapInterval time.Duration `config:"reapInterval"`
	} `config:"conversation"`
}

// NativeImplementationSpec returns the ImplementationSpec of the native
// implementation type. New Configurators know about it already.
func NativeImplementationSpec() ImplementationSpec {
	return ImplementationSpec{
		Type:                native.ImplementationType,
		BuildImplementation: buildNativeImplementation,
	}
}

func buildNativeImplementation(cfg nativeConfig, kit *Kit) (provider.ImplementationProviderFactory, error) {
	return native.NewFactory(
		native.Logger(kit.Logger()),
		native.ConversationMaxAge(cfg.Conversation.MaxAge),
		native.ConversationMaxIdleTime(cfg.Conversation.MaxIdleTime),
		native.ReapInterval(cfg.Conversation.ReapInterval),
	), nil
}
