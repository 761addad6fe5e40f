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

package provider_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/api/provider/providertest"
)

func TestRegistryBindings(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	http := providertest.NewMockBindingProviderFactory(mockCtrl)
	http.EXPECT().BindingType().Return("http").AnyTimes()
	jms := providertest.NewMockBindingProviderFactory(mockCtrl)
	jms.EXPECT().BindingType().Return("jms").AnyTimes()
	unnamed := providertest.NewMockBindingProviderFactory(mockCtrl)
	unnamed.EXPECT().BindingType().Return("")

	r := provider.NewRegistry()
	require.NoError(t, r.RegisterBinding(jms))
	require.NoError(t, r.RegisterBinding(http))
	assert.Error(t, r.RegisterBinding(http), "duplicate binding type")
	assert.Error(t, r.RegisterBinding(unnamed))

	f, ok := r.BindingProviderFactory("http")
	assert.True(t, ok)
	assert.Equal(t, http, f)

	_, ok = r.BindingProviderFactory("ws")
	assert.False(t, ok)

	assert.Equal(t, []string{"http", "jms"}, r.BindingTypes())
}

func TestRegistryImplementations(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	native := providertest.NewMockImplementationProviderFactory(mockCtrl)
	native.EXPECT().ImplementationType().Return("native").AnyTimes()

	r := provider.NewRegistry()
	require.NoError(t, r.RegisterImplementation(native))
	assert.Error(t, r.RegisterImplementation(native))

	f, ok := r.ImplementationProviderFactory("native")
	assert.True(t, ok)
	assert.Equal(t, native, f)

	_, ok = r.ImplementationProviderFactory("bpel")
	assert.False(t, ok)
}

func TestRegistryPolicies(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	newPolicy := func(name string) provider.PolicyProviderFactory {
		p := providertest.NewMockPolicyProviderFactory(mockCtrl)
		p.EXPECT().Name().Return(name).AnyTimes()
		return p
	}

	r := provider.NewRegistry()
	assert.Empty(t, r.PolicyProviderFactories())

	b, a := newPolicy("b"), newPolicy("a")
	require.NoError(t, r.RegisterPolicy(b))
	require.NoError(t, r.RegisterPolicy(a))
	assert.Error(t, r.RegisterPolicy(newPolicy("a")))
	assert.Error(t, r.RegisterPolicy(newPolicy("")))

	assert.Equal(t, []provider.PolicyProviderFactory{a, b}, r.PolicyProviderFactories())
}
