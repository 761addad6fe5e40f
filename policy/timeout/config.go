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

package timeout

import (
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/scaconfig"
)

// Spec returns a PolicySpec for the timeout policy.
//
//   cfg := scaconfig.New()
//   cfg.MustRegisterPolicy(timeout.Spec())
//
// The policy is configured under "policies".
//
//   policies:
//     timeout:
//       default: 500ms
//       operations:
//         checkout: 2s
func Spec() scaconfig.PolicySpec {
	return scaconfig.PolicySpec{
		Name:        Name,
		BuildPolicy: buildPolicy,
	}
}

func buildPolicy(cfg Config, _ *scaconfig.Kit) (provider.PolicyProviderFactory, error) {
	f, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return f, nil
}
