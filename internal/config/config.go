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

// Package config decodes loosely typed configuration data, as produced by
// YAML parsers, into structs tagged with `config:"..."`.
//
// A field tagged with the "interpolate" option, like `config:"uri,interpolate"`,
// has its string value rendered with ${VAR} and ${VAR:default} references
// resolved first.
package config

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/uber-go/mapdecode"
	"go.uber.org/sca/internal/interpolate"
)

const (
	_tagName           = "config"
	_interpolateOption = "interpolate"
)

// DecodeInto decodes src into dst using the `config` struct tag.
func DecodeInto(dst interface{}, src interface{}, opts ...mapdecode.Option) error {
	opts = append(opts, mapdecode.TagName(_tagName))
	return mapdecode.Decode(dst, src, opts...)
}

// InterpolateWith renders the string values of fields carrying the
// interpolate option with resolver.
func InterpolateWith(resolver interpolate.VariableResolver) mapdecode.Option {
	return mapdecode.FieldHook(func(dest reflect.StructField, srcData reflect.Value) (reflect.Value, error) {
		if !hasOption(dest.Tag.Get(_tagName), _interpolateOption) {
			return srcData, nil
		}

		// Integers and other values may legitimately reach an interpolated
		// field; only strings are rendered.
		v, ok := srcData.Interface().(string)
		if !ok {
			return srcData, nil
		}

		s, err := interpolate.Parse(v)
		if err != nil {
			return srcData, fmt.Errorf("failed to parse %q for interpolation: %v", v, err)
		}
		rendered, err := s.Render(resolver)
		if err != nil {
			return srcData, fmt.Errorf("failed to render %q: %v", v, err)
		}
		return reflect.ValueOf(rendered), nil
	})
}

func hasOption(tag, option string) bool {
	parts := strings.Split(tag, ",")
	for _, p := range parts[1:] {
		if p == option {
			return true
		}
	}
	return false
}

// AttributeMap holds the attributes of a configuration section whose shape
// is only known to the component consuming it, such as a binding.
type AttributeMap map[string]interface{}

// Get decodes the named attribute into dst. It reports whether the
// attribute was present.
func (m AttributeMap) Get(name string, dst interface{}) (bool, error) {
	v, ok := m[name]
	if !ok {
		return false, nil
	}
	if err := DecodeInto(dst, v); err != nil {
		return true, fmt.Errorf("failed to read attribute %q: %v", name, err)
	}
	return true, nil
}

// Pop is Get followed by the removal of the attribute.
func (m AttributeMap) Pop(name string, dst interface{}) (bool, error) {
	ok, err := m.Get(name, dst)
	if ok {
		delete(m, name)
	}
	return ok, err
}

// PopString pops a string attribute.
func (m AttributeMap) PopString(name string) (string, error) {
	var s string
	_, err := m.Pop(name, &s)
	return s, err
}

// PopBool pops a boolean attribute.
func (m AttributeMap) PopBool(name string) (bool, error) {
	var b bool
	_, err := m.Pop(name, &b)
	return b, err
}

// Keys returns the attribute names in sorted order.
func (m AttributeMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode decodes all attributes into dst.
func (m AttributeMap) Decode(dst interface{}, opts ...mapdecode.Option) error {
	return DecodeInto(dst, m, opts...)
}
