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

// Package monitor collects the problems found while building and wiring an
// assembly. Problems do not abort the build; the caller inspects them once
// the build is over.
package monitor

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Severity of a Problem.
type Severity int

const (
	// SeverityWarning problems leave the assembly usable.
	SeverityWarning Severity = iota
	// SeverityError problems make the affected part of the assembly unusable.
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Categories group related message keys.
const (
	CategoryAssembly = "assembly-validation"
	CategoryWiring   = "wiring"
)

// Message keys of the problems reported by the runtime.
const (
	DuplicateComponentName           = "DuplicateComponentName"
	PromotedServiceNotFound          = "PromotedServiceNotFound"
	ServiceInterfaceNotSubSet        = "ServiceInterfaceNotSubSet"
	PromotedReferenceNotFound        = "PromotedReferenceNotFound"
	ReferenceInterfaceNotSubSet      = "ReferenceInterfaceNotSubSet"
	ComponentReferenceTargetNotFound = "ComponentReferenceTargetNotFound"
	ReferenceIncompatibleInterface   = "ReferenceIncompatibleInterface"
	ReferenceMultiplicityViolated    = "ReferenceMultiplicityViolated"
	NoImplementation                 = "NoImplementation"
)

var _messages = map[string]string{
	DuplicateComponentName:           "duplicate component name %q in composite %q",
	PromotedServiceNotFound:          "promoted service %q not found in composite %q",
	ServiceInterfaceNotSubSet:        "interface of composite service %q is not compatible with promoted service %q",
	PromotedReferenceNotFound:        "promoted reference %q not found in composite %q",
	ReferenceInterfaceNotSubSet:      "interface of composite reference %q is not compatible with promoted reference %q",
	ComponentReferenceTargetNotFound: "target %q of reference %q not found",
	ReferenceIncompatibleInterface:   "interface of reference %q is not compatible with target %q",
	ReferenceMultiplicityViolated:    "reference %q has %d targets which violates its multiplicity",
	NoImplementation:                 "component %q has no implementation",
}

// Problem is one validation finding.
type Problem struct {
	Severity Severity

	// Context names the model element the problem was found in.
	Context string

	Category string

	// MessageKey identifies the kind of problem.
	MessageKey string
	Args       []interface{}
}

// Message renders the problem for humans.
func (p Problem) Message() string {
	if format, ok := _messages[p.MessageKey]; ok {
		return fmt.Sprintf(format, p.Args...)
	}
	return fmt.Sprintf("%v: %v", p.MessageKey, p.Args)
}

// Error implements error.
func (p Problem) Error() string {
	if p.Context == "" {
		return p.Message()
	}
	return p.Context + ": " + p.Message()
}

// Monitor receives the problems found by the runtime.
type Monitor interface {
	Problem(p Problem)
}

// Error reports an error-severity problem.
func Error(m Monitor, context, category, key string, args ...interface{}) {
	m.Problem(Problem{Severity: SeverityError, Context: context, Category: category, MessageKey: key, Args: args})
}

// Warning reports a warning-severity problem.
func Warning(m Monitor, context, category, key string, args ...interface{}) {
	m.Problem(Problem{Severity: SeverityWarning, Context: context, Category: category, MessageKey: key, Args: args})
}

// Collector is a Monitor that keeps every problem it is told about and logs
// it.
//
// Collector is safe for concurrent use.
type Collector struct {
	logger *zap.Logger

	mu       sync.Mutex
	problems []Problem
}

var _ Monitor = (*Collector)(nil)

// NewCollector builds a Collector logging to logger. A nil logger discards
// logs.
func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// Problem implements Monitor.
func (c *Collector) Problem(p Problem) {
	c.mu.Lock()
	c.problems = append(c.problems, p)
	c.mu.Unlock()

	level := zapcore.WarnLevel
	if p.Severity == SeverityError {
		level = zapcore.ErrorLevel
	}
	if ce := c.logger.Check(level, p.Message()); ce != nil {
		ce.Write(
			zap.String("context", p.Context),
			zap.String("category", p.Category),
			zap.String("problem", p.MessageKey),
		)
	}
}

// Problems returns a copy of the problems reported so far.
func (c *Collector) Problems() []Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	problems := make([]Problem, len(c.problems))
	copy(problems, c.problems)
	return problems
}

// HasErrors reports whether any error-severity problem was reported.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err combines every error-severity problem into a single error, or returns
// nil if there are none.
func (c *Collector) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	for _, p := range c.problems {
		if p.Severity == SeverityError {
			err = multierr.Append(err, p)
		}
	}
	return err
}

// Reset forgets every problem reported so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.problems = nil
	c.mu.Unlock()
}
