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

// Package scafx provides an fx module that builds an SCA runtime from YAML
// configuration, deploys composites into it and runs it for the lifetime
// of the application.
//
//   fx.New(
//     scafx.Module,
//     fx.Provide(func() scafx.Source {
//       return scafx.Source{Name: "shop", YAML: confBytes}
//     }),
//     fx.Provide(newShopComposite), // returns a scafx.CompositeResult
//   )
//
// Binding, implementation and policy specs provided to the "scafx" value
// groups are registered with the configurator before the configuration is
// loaded.
package scafx

import (
	"bytes"
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
	"go.uber.org/net/metrics"
	"go.uber.org/sca"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/domain"
	"go.uber.org/sca/scaconfig"
	"go.uber.org/zap"
)

// Module provides a *sca.Runtime built from the Source in the graph, and
// starts and stops it with the application.
var Module = fx.Options(
	fx.Provide(NewConfig),
	RuntimeModule,
)

// RuntimeModule provides a *sca.Runtime from the sca.Config in the graph.
// Use it in place of Module to configure the runtime programmatically.
var RuntimeModule = fx.Provide(NewRuntime)

// Source is the YAML configuration of a runtime.
type Source struct {
	// Name of the runtime, unless the configuration overrides it.
	Name string

	YAML []byte
}

// CompositeResult adds a composite to the ones deployed into the runtime.
type CompositeResult struct {
	fx.Out

	Composite *assembly.Composite `group:"scafx"`
}

// SpecResult teaches the configurator about a binding, implementation or
// policy type. Leave the specs that are not needed unset.
type SpecResult struct {
	fx.Out

	Binding        scaconfig.BindingSpec        `group:"scafx"`
	Implementation scaconfig.ImplementationSpec `group:"scafx"`
	Policy         scaconfig.PolicySpec         `group:"scafx"`
}

// ConfigParams defines the dependencies of NewConfig.
type ConfigParams struct {
	fx.In

	Source          Source
	Logger          *zap.Logger                    `optional:"true"`
	Bindings        []scaconfig.BindingSpec        `group:"scafx"`
	Implementations []scaconfig.ImplementationSpec `group:"scafx"`
	Policies        []scaconfig.PolicySpec         `group:"scafx"`
}

// ConfigResult defines the values produced by NewConfig.
type ConfigResult struct {
	fx.Out

	Config sca.Config
}

// NewConfig loads a sca.Config from the Source.
func NewConfig(p ConfigParams) (ConfigResult, error) {
	var opts []scaconfig.Option
	if p.Logger != nil {
		opts = append(opts, scaconfig.Logger(p.Logger))
	}
	c := scaconfig.New(opts...)

	for _, s := range p.Bindings {
		if s.Type == "" {
			continue
		}
		if err := c.RegisterBinding(s); err != nil {
			return ConfigResult{}, err
		}
	}
	for _, s := range p.Implementations {
		if s.Type == "" {
			continue
		}
		if err := c.RegisterImplementation(s); err != nil {
			return ConfigResult{}, err
		}
	}
	for _, s := range p.Policies {
		if s.Name == "" {
			continue
		}
		if err := c.RegisterPolicy(s); err != nil {
			return ConfigResult{}, err
		}
	}

	cfg, err := c.LoadConfigFromYAML(p.Source.Name, bytes.NewReader(p.Source.YAML))
	if err != nil {
		return ConfigResult{}, err
	}
	return ConfigResult{Config: cfg}, nil
}

// RuntimeParams defines the dependencies of NewRuntime.
//
// The optional logger, tracer, metrics scope and domain registry are used
// when the configuration does not set them.
type RuntimeParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Config     sca.Config
	Composites []*assembly.Composite `group:"scafx"`
	Logger     *zap.Logger           `optional:"true"`
	Tracer     opentracing.Tracer    `optional:"true"`
	Metrics    *metrics.Scope        `optional:"true"`
	Domain     domain.Registry       `optional:"true"`
}

// RuntimeResult defines the values produced by NewRuntime.
type RuntimeResult struct {
	fx.Out

	Runtime *sca.Runtime
}

// NewRuntime builds a runtime, deploys the composites of the "scafx" group
// into it and hooks it to the application lifecycle.
func NewRuntime(p RuntimeParams) (RuntimeResult, error) {
	cfg := p.Config
	if cfg.Logger == nil {
		cfg.Logger = p.Logger
	}
	if cfg.Tracer == nil {
		cfg.Tracer = p.Tracer
	}
	if cfg.Metrics == nil {
		cfg.Metrics = p.Metrics
	}
	if cfg.Domain == nil {
		cfg.Domain = p.Domain
	}

	rt, err := sca.NewRuntime(cfg)
	if err != nil {
		return RuntimeResult{}, err
	}
	for _, composite := range p.Composites {
		if composite == nil {
			continue
		}
		if err := rt.Deploy(composite); err != nil {
			return RuntimeResult{}, err
		}
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return rt.Start()
		},
		OnStop: func(context.Context) error {
			return rt.Stop()
		},
	})
	return RuntimeResult{Runtime: rt}, nil
}
