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

package sca

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/sca/api/assembly"
	"go.uber.org/sca/api/domain/domaintest"
	"go.uber.org/sca/api/invocation"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/api/provider/providertest"
	"go.uber.org/sca/scaerrors"
)

func newEndpoint(contract *assembly.InterfaceContract) *assembly.Endpoint {
	svc := &assembly.ComponentService{Contract: assembly.Contract{Name: "calc", InterfaceContract: contract}}
	return &assembly.Endpoint{
		Component:         &assembly.Component{Name: "Calc", Services: []*assembly.ComponentService{svc}},
		Service:           svc,
		Binding:           &assembly.SCABinding{BindingURI: "Calc/calc"},
		InterfaceContract: contract,
		URI:               "Calc/calc",
	}
}

func TestServiceProviderLocalOnly(t *testing.T) {
	f := NewFactory(newLocator())
	p, err := f.CreateServiceBindingProvider(newEndpoint(remotableContract()), remoteInvoker())
	require.NoError(t, err)

	assert.False(t, p.SupportsOneWayInvocation())
	assert.Equal(t, "Calculator", p.BindingInterfaceContract().Interface.Name)
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}

func TestServiceProviderDistributed(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	reg := provider.NewRegistry()
	distributedFactory := providertest.NewMockBindingProviderFactory(mockCtrl)
	distributedFactory.EXPECT().BindingType().Return(DistributedBindingType).AnyTimes()
	require.NoError(t, reg.RegisterBinding(distributedFactory))

	distributed := providertest.NewMockServiceBindingProvider(mockCtrl)
	distributedFactory.EXPECT().
		CreateServiceBindingProvider(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ep *assembly.Endpoint, _ invocation.Invoker) (provider.ServiceBindingProvider, error) {
			assert.Equal(t, DistributedBindingType, ep.Binding.Type())
			return distributed, nil
		})
	distributed.EXPECT().BindingInterfaceContract().Return(nil)
	distributed.EXPECT().Start().Return(nil)
	distributed.EXPECT().Stop().Return(nil)

	f := NewFactory(newLocator(), Registry(reg), Domain(domaintest.NewMockRegistry(mockCtrl), _node))
	p, err := f.CreateServiceBindingProvider(newEndpoint(remotableContract()), remoteInvoker())
	require.NoError(t, err)

	assert.Nil(t, p.BindingInterfaceContract())
	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}

func TestServiceProviderNotRemotable(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	reg := provider.NewRegistry()
	distributedFactory := providertest.NewMockBindingProviderFactory(mockCtrl)
	distributedFactory.EXPECT().BindingType().Return(DistributedBindingType).AnyTimes()
	require.NoError(t, reg.RegisterBinding(distributedFactory))

	contract := remotableContract()
	contract.Interface.Remotable = false

	f := NewFactory(newLocator(), Registry(reg), Domain(domaintest.NewMockRegistry(mockCtrl), _node))
	_, err := f.CreateServiceBindingProvider(newEndpoint(contract), remoteInvoker())
	require.NoError(t, err, "non remotable services stay local")
}

func TestServiceProviderDistributedFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	reg := provider.NewRegistry()
	distributedFactory := providertest.NewMockBindingProviderFactory(mockCtrl)
	distributedFactory.EXPECT().BindingType().Return(DistributedBindingType).AnyTimes()
	distributedFactory.EXPECT().CreateServiceBindingProvider(gomock.Any(), gomock.Any()).Return(nil, errors.New("port in use"))
	require.NoError(t, reg.RegisterBinding(distributedFactory))

	f := NewFactory(newLocator(), Registry(reg), Domain(domaintest.NewMockRegistry(mockCtrl), _node))
	_, err := f.CreateServiceBindingProvider(newEndpoint(remotableContract()), remoteInvoker())
	require.Error(t, err)
	assert.True(t, scaerrors.IsActivationFailed(err))
	assert.Contains(t, err.Error(), "port in use")
}

func TestDistributedBinding(t *testing.T) {
	sca := &assembly.SCABinding{BindingName: "n", BindingURI: "u"}
	b := &DistributedBinding{SCABinding: sca}
	assert.Equal(t, DistributedBindingType, b.Type())
	assert.Equal(t, "n", b.Name())

	c := b.Clone()
	c.SetURI("v")
	assert.Equal(t, "u", b.URI())
	assert.Equal(t, "v", c.URI())

	b.SetURI("w")
	assert.Equal(t, "w", sca.URI(), "the wrapped binding is updated")
}
