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

// Package retry provides a policy retrying the calls made through references
// when their target is unavailable.
//
// The policy applies to the references that require its intent, either
// themselves or through their component. A failed call is attempted again
// after an exponential backoff with full jitter, as long as the fault
// carries one of the retryable codes, the context is not done and attempts
// remain. One-way operations are never retried.
//
// Policies bound to the same reference run in the order of their names, so
// when the timeout policy applies too, each attempt is bounded on its own.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/uber-go/mapdecode"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/backoff"
	"go.uber.org/sca/scaerrors"
	"go.uber.org/zap"
)

const (
	// Name is the name of the policy.
	Name = "retry"

	// DefaultIntent is the intent references require to be bound by the
	// policy.
	DefaultIntent = "retry"

	_defaultMaxAttempts = 3
)

// Config configures the policy.
type Config struct {
	// MaxAttempts is the number of times a call is attempted, the first
	// included. Defaults to 3.
	MaxAttempts int `config:"maxAttempts"`

	// Backoff determines the wait between attempts.
	Backoff Backoff `config:"backoff"`

	// Codes are the fault codes worth another attempt. Defaults to
	// service-unavailable.
	Codes Codes `config:"codes"`

	// Intent overrides the intent required by references. Defaults to
	// DefaultIntent.
	Intent string `config:"intent"`
}

// Backoff specifies the exponential backoff between attempts. The wait
// after the first failed attempt is drawn from [0, first]; each subsequent
// attempt doubles the range, up to max.
//
//   backoff:
//     first: 10ms
//     max: 1s
type Backoff struct {
	First time.Duration `config:"first"`
	Max   time.Duration `config:"max"`
}

func (b Backoff) strategy() (backoff.Strategy, error) {
	var opts []backoff.ExponentialOption
	if b.First > 0 {
		opts = append(opts, backoff.FirstBackoff(b.First))
	}
	if b.Max > 0 {
		opts = append(opts, backoff.MaxBackoff(b.Max))
	}
	return backoff.NewExponential(opts...)
}

// Codes is a list of fault codes, configured by name.
//
//   codes: [service-unavailable, deadline-exceeded]
type Codes []scaerrors.Code

// Decode implements mapdecode.Decoder.
func (c *Codes) Decode(into mapdecode.Into) error {
	var names []string
	if err := into(&names); err != nil {
		return fmt.Errorf("could not decode codes: %v", err)
	}

	codes := make(Codes, len(names))
	for i, name := range names {
		if err := codes[i].UnmarshalText([]byte(name)); err != nil {
			return err
		}
	}
	*c = codes
	return nil
}

func (c Codes) contain(code scaerrors.Code) bool {
	for _, want := range c {
		if want == code {
			return true
		}
	}
	return false
}

// Factory is the provider.PolicyProviderFactory of the policy.
type Factory struct {
	cfg      Config
	strategy backoff.Strategy
	logger   *zap.Logger
}

var _ provider.PolicyProviderFactory = (*Factory)(nil)

// Option customizes a Factory.
type Option func(*Factory)

// Logger sets the logger reporting retried calls. Defaults to a no-op
// logger.
func Logger(logger *zap.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// New builds the policy factory.
func New(cfg Config, opts ...Option) (*Factory, error) {
	if cfg.MaxAttempts < 0 {
		return nil, fmt.Errorf("max attempts must not be negative, found %d", cfg.MaxAttempts)
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = _defaultMaxAttempts
	}
	if len(cfg.Codes) == 0 {
		cfg.Codes = Codes{scaerrors.CodeServiceUnavailable}
	}
	for _, code := range cfg.Codes {
		if code == scaerrors.CodeOK {
			return nil, fmt.Errorf("code %v can not be retried", code)
		}
	}
	if cfg.Intent == "" {
		cfg.Intent = DefaultIntent
	}

	strategy, err := cfg.Backoff.strategy()
	if err != nil {
		return nil, fmt.Errorf("invalid backoff: %v", err)
	}

	f := &Factory{cfg: cfg, strategy: strategy, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Name implements provider.PolicyProviderFactory.
func (f *Factory) Name() string { return Name }

// CreateReferencePolicyProvider implements provider.PolicyProviderFactory.
func (f *Factory) CreateReferencePolicyProvider(ref *assembly.EndpointReference) provider.PolicyProvider {
	if !f.requiredBy(ref) {
		return nil
	}
	return &policyProvider{f: f, name: ref.Name()}
}

// CreateServicePolicyProvider implements provider.PolicyProviderFactory.
func (f *Factory) CreateServicePolicyProvider(*assembly.Endpoint) provider.PolicyProvider {
	return nil
}

// CreateImplementationPolicyProvider implements
// provider.PolicyProviderFactory.
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
	f    *Factory
	name string
}

func (p *policyProvider) CreateInterceptor(op *assembly.Operation) invocation.Interceptor {
	if op.OneWay || p.f.cfg.MaxAttempts < 2 {
		return nil
	}
	return &interceptor{
		maxAttempts: uint(p.f.cfg.MaxAttempts),
		codes:       p.f.cfg.Codes,
		strategy:    p.f.strategy,
		logger:      p.f.logger.With(zap.String("reference", p.name), zap.String("operation", op.Name)),
	}
}

type interceptor struct {
	maxAttempts uint
	codes       Codes
	strategy    backoff.Strategy
	logger      *zap.Logger
}

func (i *interceptor) Invoke(ctx context.Context, msg *invocation.Message, next invocation.Invoker) *invocation.Message {
	for attempt := uint(0); ; attempt++ {
		res := next.Invoke(ctx, attemptOf(msg))
		if !i.retryable(res) || attempt+1 >= i.maxAttempts {
			return res
		}

		wait := i.strategy.Duration(attempt)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < wait {
			return res
		}
		i.logger.Debug("Retrying call.",
			zap.Uint("attempt", attempt+1),
			zap.Duration("backoff", wait),
			zap.Error(res.Fault()))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return res
		case <-timer.C:
		}
	}
}

func (i *interceptor) retryable(res *invocation.Message) bool {
	if !res.IsFault() {
		return false
	}
	st := scaerrors.FromError(res.Fault())
	return st != nil && i.codes.contain(st.Code())
}

// attemptOf copies msg so that headers added by one attempt do not leak into
// the next.
func attemptOf(msg *invocation.Message) *invocation.Message {
	m := *msg
	m.Headers = msg.Headers.Clone()
	return &m
}
