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
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/sca"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/config"
	"go.uber.org/sca/internal/interpolate"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Configurator builds Runtimes from configuration.
//
// A new Configurator only knows about the native implementation type.
// Inform it about bindings, policies and other implementation types with
// RegisterBinding, RegisterPolicy and RegisterImplementation, or their
// Must* variants. The SCA binding needs no registration: runtimes provide
// it.
type Configurator struct {
	knownBindings        map[string]*compiledBindingSpec
	knownImplementations map[string]*compiledImplementationSpec
	knownPolicies        map[string]*compiledPolicySpec
	resolver             interpolate.VariableResolver
	logger               *zap.Logger
}

// Option customizes a Configurator.
type Option func(*Configurator)

// InterpolationResolver sets the function used to resolve the ${VAR}
// references of interpolated attributes. Defaults to os.LookupEnv.
func InterpolationResolver(resolver func(name string) (string, bool)) Option {
	return func(c *Configurator) {
		c.resolver = resolver
	}
}

// Logger sets the logger of the runtimes and providers built by the
// Configurator. Defaults to a no-op logger.
func Logger(logger *zap.Logger) Option {
	return func(c *Configurator) {
		c.logger = logger
	}
}

// New sets up a new Configurator.
func New(opts ...Option) *Configurator {
	c := &Configurator{
		knownBindings:        make(map[string]*compiledBindingSpec),
		knownImplementations: make(map[string]*compiledImplementationSpec),
		knownPolicies:        make(map[string]*compiledPolicySpec),
		resolver:             os.LookupEnv,
		logger:               zap.NewNop(),
	}
	c.MustRegisterImplementation(NativeImplementationSpec())
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterBinding registers a BindingSpec with the Configurator, teaching
// it how to build the provider factory of that binding type from
// configuration.
//
// An error is returned if the BindingSpec is invalid. If a binding with the
// same type already exists, it will be replaced.
func (c *Configurator) RegisterBinding(s BindingSpec) error {
	if s.Type == "" {
		return errors.New("type is required")
	}

	spec, err := compileBindingSpec(&s)
	if err != nil {
		return fmt.Errorf("invalid BindingSpec for %q: %v", s.Type, err)
	}
	c.knownBindings[s.Type] = spec
	return nil
}

// MustRegisterBinding registers the given BindingSpec with the
// Configurator. This function panics if the BindingSpec is invalid.
func (c *Configurator) MustRegisterBinding(s BindingSpec) {
	if err := c.RegisterBinding(s); err != nil {
		panic(err)
	}
}

// RegisterImplementation registers an ImplementationSpec with the
// Configurator.
//
// An error is returned if the ImplementationSpec is invalid. If an
// implementation with the same type already exists, it will be replaced.
func (c *Configurator) RegisterImplementation(s ImplementationSpec) error {
	if s.Type == "" {
		return errors.New("type is required")
	}

	spec, err := compileImplementationSpec(&s)
	if err != nil {
		return fmt.Errorf("invalid ImplementationSpec for %q: %v", s.Type, err)
	}
	c.knownImplementations[s.Type] = spec
	return nil
}

// MustRegisterImplementation registers the given ImplementationSpec with
// the Configurator. This function panics if the ImplementationSpec is
// invalid.
func (c *Configurator) MustRegisterImplementation(s ImplementationSpec) {
	if err := c.RegisterImplementation(s); err != nil {
		panic(err)
	}
}

// RegisterPolicy registers a PolicySpec with the Configurator.
//
// An error is returned if the PolicySpec is invalid. If a policy with the
// same name already exists, it will be replaced.
func (c *Configurator) RegisterPolicy(s PolicySpec) error {
	if s.Name == "" {
		return errors.New("name is required")
	}

	spec, err := compilePolicySpec(&s)
	if err != nil {
		return fmt.Errorf("invalid PolicySpec for %q: %v", s.Name, err)
	}
	c.knownPolicies[s.Name] = spec
	return nil
}

// MustRegisterPolicy registers the given PolicySpec with the Configurator.
// This function panics if the PolicySpec is invalid.
func (c *Configurator) MustRegisterPolicy(s PolicySpec) {
	if err := c.RegisterPolicy(s); err != nil {
		panic(err)
	}
}

// LoadConfigFromYAML loads a sca.Config from YAML data. Use LoadConfig if
// you have already parsed a map[string]interface{} or
// map[interface{}]interface{}.
func (c *Configurator) LoadConfigFromYAML(runtimeName string, r io.Reader) (sca.Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return sca.Config{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return sca.Config{}, err
	}
	return c.LoadConfig(runtimeName, data)
}

// LoadConfig loads a sca.Config from a map[string]interface{} or
// map[interface{}]interface{}.
//
// See the package documentation for the shape the data is expected to
// conform to.
func (c *Configurator) LoadConfig(runtimeName string, data interface{}) (sca.Config, error) {
	var cfg scaConfig
	if err := config.DecodeInto(&cfg, data, config.InterpolateWith(c.resolver)); err != nil {
		return sca.Config{}, err
	}
	return c.load(runtimeName, &cfg)
}

// NewRuntimeFromYAML builds a Runtime from the given YAML configuration.
func (c *Configurator) NewRuntimeFromYAML(runtimeName string, r io.Reader) (*sca.Runtime, error) {
	cfg, err := c.LoadConfigFromYAML(runtimeName, r)
	if err != nil {
		return nil, err
	}
	return sca.NewRuntime(cfg)
}

// NewRuntime builds a Runtime from the given configuration data.
func (c *Configurator) NewRuntime(runtimeName string, data interface{}) (*sca.Runtime, error) {
	cfg, err := c.LoadConfig(runtimeName, data)
	if err != nil {
		return nil, err
	}
	return sca.NewRuntime(cfg)
}

// Kit creates a dependency kit for the configurator, suitable for passing to
// spec build functions.
func (c *Configurator) Kit(runtimeName string) *Kit {
	return &Kit{
		name:     runtimeName,
		logger:   c.logger.With(zap.String("runtime", runtimeName)),
		resolver: c.resolver,
	}
}

func (c *Configurator) load(runtimeName string, cfg *scaConfig) (_ sca.Config, err error) {
	if cfg.Name != "" {
		runtimeName = cfg.Name
	}
	kit := c.Kit(runtimeName)
	registry := provider.NewRegistry()

	for _, bindingType := range sortedKeys(cfg.Bindings) {
		if e := c.loadBindingInto(registry, kit, bindingType, cfg.Bindings[bindingType]); e != nil {
			err = multierr.Append(err, e)
		}
	}
	for _, implType := range sortedKeys(cfg.Implementations) {
		if e := c.loadImplementationInto(registry, kit, implType, cfg.Implementations[implType]); e != nil {
			err = multierr.Append(err, e)
		}
	}

	sort.Slice(cfg.Policies, func(i, j int) bool { return cfg.Policies[i].Name < cfg.Policies[j].Name })
	for _, p := range cfg.Policies {
		if e := c.loadPolicyInto(registry, kit, p); e != nil {
			err = multierr.Append(err, e)
		}
	}

	if e := validateNode(cfg.Node); e != nil {
		err = multierr.Append(err, e)
	}
	if err != nil {
		return sca.Config{}, err
	}

	sc := sca.Config{
		Name:            runtimeName,
		NodeURI:         cfg.Node.URI,
		DomainURI:       cfg.Node.Domain,
		Registry:        registry,
		RegistryTimeout: cfg.RegistryTimeout,
		Logger:          c.logger,
	}
	cfg.Conversations.fill(&sc)
	cfg.Logging.fill(&sc)
	return sc, nil
}

func (c *Configurator) loadBindingInto(r *provider.Registry, kit *Kit, bindingType string, attrs config.AttributeMap) error {
	spec, ok := c.knownBindings[bindingType]
	if !ok {
		return fmt.Errorf("failed to load binding %q: unknown binding type", bindingType)
	}
	f, err := c.build(spec.Build, kit, attrs)
	if err != nil {
		return fmt.Errorf("failed to load binding %q: %v", bindingType, err)
	}
	return r.RegisterBinding(f.(provider.BindingProviderFactory))
}

func (c *Configurator) loadImplementationInto(r *provider.Registry, kit *Kit, implType string, attrs config.AttributeMap) error {
	spec, ok := c.knownImplementations[implType]
	if !ok {
		return fmt.Errorf("failed to load implementation %q: unknown implementation type", implType)
	}
	f, err := c.build(spec.Build, kit, attrs)
	if err != nil {
		return fmt.Errorf("failed to load implementation %q: %v", implType, err)
	}
	return r.RegisterImplementation(f.(provider.ImplementationProviderFactory))
}

func (c *Configurator) loadPolicyInto(r *provider.Registry, kit *Kit, p policy) error {
	if p.Disabled {
		return nil
	}
	spec, ok := c.knownPolicies[p.Name]
	if !ok {
		return fmt.Errorf("failed to load policy %q: unknown policy", p.Name)
	}
	f, err := c.build(spec.Build, kit, p.Attributes)
	if err != nil {
		return fmt.Errorf("failed to load policy %q: %v", p.Name, err)
	}
	return r.RegisterPolicy(f.(provider.PolicyProviderFactory))
}

func (c *Configurator) build(spec *configSpec, kit *Kit, attrs config.AttributeMap) (interface{}, error) {
	b, err := spec.Decode(attrs, config.InterpolateWith(c.resolver))
	if err != nil {
		return nil, err
	}
	v, err := b.Build(kit)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errors.New("build function returned no provider factory")
	}
	return v, nil
}

// validateNode checks that the node either joins a domain or stays alone.
func validateNode(n node) error {
	if (n.URI == "") != (n.Domain == "") {
		return fmt.Errorf("invalid node configuration: uri and domain must be set together, found uri %q and domain %q",
			n.URI, n.Domain)
	}
	return nil
}

func sortedKeys(m map[string]config.AttributeMap) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
