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

// Package timeout provides a policy bounding the duration of calls made
// through references.
//
// The policy applies to the references that require its intent, either
// themselves or through their component. Calls through them get a context
// deadline unless the caller already set a shorter one. Implementations
// observe the deadline through their context.
package timeout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/scaerrors"
)

const (
	// Name is the name of the policy.
	Name = "timeout"

	// DefaultIntent is the intent references require to be bound by the
	// policy.
	DefaultIntent = "timeout"
)

// Config configures the policy.
type Config struct {
	// Default bounds the operations without an entry in Operations.
	Default time.Duration `config:"default"`

	// Operations bounds individual operations by name.
	Operations map[string]time.Duration `config:"operations"`

	// Intent overrides the intent required by references. Defaults to
	// DefaultIntent.
	Intent string `config:"intent"`
}

// Factory is the provider.PolicyProviderFactory of the policy.
type Factory struct {
	cfg Config
}

var _ provider.PolicyProviderFactory = (*Factory)(nil)

// New builds the policy factory.
func New(cfg Config) (*Factory, error) {
	if cfg.Default < 0 {
		return nil, fmt.Errorf("default timeout must not be negative, found %v", cfg.Default)
	}
	for op, d := range cfg.Operations {
		if d <= 0 {
			return nil, fmt.Errorf("timeout of operation %q must be positive, found %v", op, d)
		}
	}
	if cfg.Default == 0 && len(cfg.Operations) == 0 {
		return nil, errors.New("either a default or a per operation timeout is required")
	}
	if cfg.Intent == "" {
		cfg.Intent = DefaultIntent
	}
	return &Factory{cfg: cfg}, nil
}

// Name implements provider.PolicyProviderFactory.
func (f *Factory) Name() string { return Name }

// CreateReferencePolicyProvider implements provider.PolicyProviderFactory.
func (f *Factory) CreateReferencePolicyProvider(ref *assembly.EndpointReference) provider.PolicyProvider {
	if !f.requiredBy(ref) {
		return nil
	}
	return &policyProvider{cfg: f.cfg, name: ref.Name()}
}

// CreateServicePolicyProvider implements provider.PolicyProviderFactory.
// Services are not bound.
func (f *Factory) CreateServicePolicyProvider(*assembly.Endpoint) provider.PolicyProvider {
	return nil
}

// CreateImplementationPolicyProvider implements
// provider.PolicyProviderFactory. Implementations are not bound.
func (f *Factory) CreateImplementationPolicyProvider(*assembly.Component) provider.PolicyProvider {
	return nil
}

func (f *Factory) requiredBy(ref *assembly.EndpointReference) bool {
	if ref.Reference != nil && contains(ref.Reference.Intents, f.cfg.Intent) {
		return true
	}
	return ref.Component != nil && contains(ref.Component.Intents, f.cfg.Intent)
}

func contains(intents []string, intent string) bool {
	for _, i := range intents {
		if i == intent {
			return true
		}
	}
	return false
}

type policyProvider struct {
	cfg  Config
	name string
}

func (p *policyProvider) CreateInterceptor(op *assembly.Operation) invocation.Interceptor {
	d, ok := p.cfg.Operations[op.Name]
	if !ok {
		d = p.cfg.Default
	}
	if d <= 0 {
		return nil
	}
	return &interceptor{timeout: d, name: p.name}
}

type interceptor struct {
	timeout time.Duration
	name    string
}

func (i *interceptor) Invoke(ctx context.Context, msg *invocation.Message, next invocation.Invoker) *invocation.Message {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= i.timeout {
		return next.Invoke(ctx, msg)
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	res := next.Invoke(ctx, msg)
	if err := res.Fault(); err == context.DeadlineExceeded {
		res.SetFault(scaerrors.Newf(scaerrors.CodeDeadlineExceeded,
			"call to operation %q through %q timed out after %v", operationName(msg), i.name, i.timeout))
	}
	return res
}

func operationName(msg *invocation.Message) string {
	if msg.Operation == nil {
		return ""
	}
	return msg.Operation.Name
}
