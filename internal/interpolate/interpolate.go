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

// Package interpolate renders strings referring to variables, such as
// environment variables, in the forms ${NAME} and ${NAME:default}.
//
// A backslash before "$" produces a literal "$". A "$" that does not start a
// reference is kept as-is.
package interpolate

import (
	"fmt"
	"strings"
)

type (
	term interface {
		render(VariableResolver) (string, error)
	}

	literal string

	variable struct {
		Name       string
		Default    string
		HasDefault bool
	}
)

func (l literal) render(VariableResolver) (string, error) { return string(l), nil }

func (v variable) render(resolve VariableResolver) (string, error) {
	if val, ok := resolve(v.Name); ok {
		return val, nil
	}
	if v.HasDefault {
		return v.Default, nil
	}
	return "", fmt.Errorf("variable %q does not have a value or a default", v.Name)
}

// VariableResolver looks up the value of a variable. The boolean reports
// whether the variable is defined.
type VariableResolver func(name string) (value string, ok bool)

// String is a parsed string ready to be rendered.
type String []term

// Parse parses s.
func Parse(s string) (String, error) {
	var (
		out String
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, literal(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '$':
			lit.WriteByte('$')
			i++
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated variable reference at offset %d in %q", i, s)
			}
			v, err := parseVariable(s[i+2 : i+end])
			if err != nil {
				return nil, fmt.Errorf("invalid variable reference at offset %d in %q: %v", i, s, err)
			}
			flush()
			out = append(out, v)
			i += end
		default:
			lit.WriteByte(s[i])
		}
	}
	flush()
	return out, nil
}

// parseVariable parses the inside of ${...}.
func parseVariable(body string) (variable, error) {
	v := variable{Name: body}
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		v = variable{Name: body[:idx], Default: body[idx+1:], HasDefault: true}
	}
	if err := validateName(v.Name); err != nil {
		return variable{}, err
	}
	return v, nil
}

// validateName accepts letters, digits and underscores, with single dashes
// between them.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty variable name")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		case c == '-':
			if i == 0 || i == len(name)-1 || name[i-1] == '-' {
				return fmt.Errorf("misplaced dash in variable name %q", name)
			}
		default:
			return fmt.Errorf("invalid character %q in variable name %q", c, name)
		}
	}
	return nil
}

// Render renders the string, resolving variables with resolve.
func (s String) Render(resolve VariableResolver) (string, error) {
	var sb strings.Builder
	for _, t := range s {
		v, err := t.render(resolve)
		if err != nil {
			return "", err
		}
		sb.WriteString(v)
	}
	return sb.String(), nil
}
