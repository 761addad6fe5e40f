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
	"reflect"

	"github.com/uber-go/mapdecode"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/config"
)

// BindingSpec holds the configuration for a binding type. It teaches a
// Configurator how to build the provider factory of that binding type from
// the attributes given under "bindings".
//
// Given the YAML,
//
//   bindings:
//     http:
//       address: ":8080"
//
// The Configurator decodes the "http" attributes into the configuration
// struct accepted by the BuildBinding function of the BindingSpec
// registered for "http".
type BindingSpec struct {
	// Type of the binding, as referenced by services and references.
	//
	// This is required.
	Type string

	// A function in the shape,
	//
	//   func(C, *scaconfig.Kit) (provider.BindingProviderFactory, error)
	//
	// Where C is a struct or pointer to a struct defining the configuration
	// of the binding. Attributes are decoded into C using the `config`
	// struct tag. Fields tagged with the "interpolate" option have their
	// ${VAR} and ${VAR:default} references resolved first.
	//
	// This is required.
	BuildBinding interface{}
}

// ImplementationSpec holds the configuration for an implementation type.
// The attributes given under "implementations" for the type are decoded
// into the configuration accepted by BuildImplementation.
type ImplementationSpec struct {
	// Type of the implementation, as returned by
	// assembly.Implementation.ImplementationType.
	//
	// This is required.
	Type string

	// A function in the shape,
	//
	//   func(C, *scaconfig.Kit) (provider.ImplementationProviderFactory, error)
	//
	// Where C is a struct or pointer to a struct.
	//
	// This is required.
	BuildImplementation interface{}
}

// PolicySpec holds the configuration for a policy. The attributes given
// under "policies" for the policy are decoded into the configuration
// accepted by BuildPolicy.
type PolicySpec struct {
	// Name of the policy.
	//
	// This is required.
	Name string

	// A function in the shape,
	//
	//   func(C, *scaconfig.Kit) (provider.PolicyProviderFactory, error)
	//
	// Where C is a struct or pointer to a struct.
	//
	// This is required.
	BuildPolicy interface{}
}

var (
	_typeOfError                         = reflect.TypeOf((*error)(nil)).Elem()
	_typeOfBindingProviderFactory        = reflect.TypeOf((*provider.BindingProviderFactory)(nil)).Elem()
	_typeOfImplementationProviderFactory = reflect.TypeOf((*provider.ImplementationProviderFactory)(nil)).Elem()
	_typeOfPolicyProviderFactory         = reflect.TypeOf((*provider.PolicyProviderFactory)(nil)).Elem()
)

type compiledBindingSpec struct {
	Type  string
	Build *configSpec
}

func compileBindingSpec(spec *BindingSpec) (*compiledBindingSpec, error) {
	if spec.BuildBinding == nil {
		return nil, errors.New("BuildBinding is required")
	}
	build, err := compileBuildFunc("BuildBinding", spec.BuildBinding, _typeOfBindingProviderFactory)
	if err != nil {
		return nil, err
	}
	return &compiledBindingSpec{Type: spec.Type, Build: build}, nil
}

type compiledImplementationSpec struct {
	Type  string
	Build *configSpec
}

func compileImplementationSpec(spec *ImplementationSpec) (*compiledImplementationSpec, error) {
	if spec.BuildImplementation == nil {
		return nil, errors.New("BuildImplementation is required")
	}
	build, err := compileBuildFunc("BuildImplementation", spec.BuildImplementation, _typeOfImplementationProviderFactory)
	if err != nil {
		return nil, err
	}
	return &compiledImplementationSpec{Type: spec.Type, Build: build}, nil
}

type compiledPolicySpec struct {
	Name  string
	Build *configSpec
}

func compilePolicySpec(spec *PolicySpec) (*compiledPolicySpec, error) {
	if spec.BuildPolicy == nil {
		return nil, errors.New("BuildPolicy is required")
	}
	build, err := compileBuildFunc("BuildPolicy", spec.BuildPolicy, _typeOfPolicyProviderFactory)
	if err != nil {
		return nil, err
	}
	return &compiledPolicySpec{Name: spec.Name, Build: build}, nil
}

// compileBuildFunc validates that build is a function in the shape
//
//   func(C, *Kit) (output, error)
func compileBuildFunc(name string, build interface{}, output reflect.Type) (*configSpec, error) {
	v := reflect.ValueOf(build)
	t := v.Type()

	var err error
	switch {
	case t.Kind() != reflect.Func:
		err = errors.New("must be a function")
	case t.NumIn() != 2:
		err = fmt.Errorf("must accept exactly two arguments, found %v", t.NumIn())
	case !isDecodable(t.In(0)):
		err = fmt.Errorf("must accept a struct or struct pointer as its first argument, found %v", t.In(0))
	case t.In(1) != _typeOfKit:
		err = fmt.Errorf("must accept a %v as its second argument, found %v", _typeOfKit, t.In(1))
	case t.NumOut() != 2:
		err = fmt.Errorf("must return exactly two results, found %v", t.NumOut())
	case t.Out(0) != output:
		err = fmt.Errorf("must return a %v as its first result, found %v", output, t.Out(0))
	case t.Out(1) != _typeOfError:
		err = fmt.Errorf("must return an error as its second result, found %v", t.Out(1))
	}

	if err != nil {
		return nil, fmt.Errorf("invalid %v %v: %v", name, t, err)
	}
	return &configSpec{inputType: t.In(0), factory: v}, nil
}

// configSpec decodes attributes into the input of a build function.
type configSpec struct {
	inputType reflect.Type
	factory   reflect.Value
}

func (cs *configSpec) Decode(attrs config.AttributeMap, opts ...mapdecode.Option) (*buildable, error) {
	inputConfig := reflect.New(cs.inputType)
	if err := attrs.Decode(inputConfig.Interface(), opts...); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %v", cs.inputType, err)
	}
	return &buildable{factory: cs.factory, inputData: inputConfig.Elem()}, nil
}

// buildable is a decoded configuration ready to be handed to its build
// function.
type buildable struct {
	inputData reflect.Value
	factory   reflect.Value
}

func (b *buildable) Build(kit *Kit) (interface{}, error) {
	result := b.factory.Call([]reflect.Value{b.inputData, reflect.ValueOf(kit)})
	err, _ := result[1].Interface().(error)
	return result[0].Interface(), err
}

func isDecodable(t reflect.Type) bool {
	for ; t.Kind() == reflect.Ptr; t = t.Elem() {
	}
	return t.Kind() == reflect.Struct
}
