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
	"fmt"
	"time"

	"github.com/uber-go/mapdecode"
	"go.uber.org/sca"
	"go.uber.org/sca/internal/config"
	"go.uber.org/zap/zapcore"
)

type scaConfig struct {
	Name            string                         `config:"name,interpolate"`
	Node            node                           `config:"node"`
	RegistryTimeout time.Duration                  `config:"registryTimeout"`
	Conversations   conversations                  `config:"conversations"`
	Bindings        map[string]config.AttributeMap `config:"bindings"`
	Implementations map[string]config.AttributeMap `config:"implementations"`
	Policies        policies                       `config:"policies"`
	Logging         logging                        `config:"logging"`
}

type node struct {
	URI    string `config:"uri,interpolate"`
	Domain string `config:"domain,interpolate"`
}

type conversations struct {
	MaxAge       time.Duration `config:"maxAge"`
	MaxIdleTime  time.Duration `config:"maxIdleTime"`
	ReapInterval time.Duration `config:"reapInterval"`
}

func (c *conversations) fill(cfg *sca.Config) {
	cfg.Conversations.MaxAge = c.MaxAge
	cfg.Conversations.MaxIdleTime = c.MaxIdleTime
	cfg.Conversations.ReapInterval = c.ReapInterval
}

type policies []policy

func (ps *policies) Decode(into mapdecode.Into) error {
	var items map[string]policy
	if err := into(&items); err != nil {
		return fmt.Errorf("failed to decode policies: %v", err)
	}

	for k, v := range items {
		v.Name = k
		*ps = append(*ps, v)
	}
	return nil
}

// policy is a configured policy, named after its key.
type policy struct {
	Name       string
	Disabled   bool
	Attributes config.AttributeMap
}

func (p *policy) Decode(into mapdecode.Into) error {
	if err := into(&p.Attributes); err != nil {
		return fmt.Errorf("failed to decode policy: %v", err)
	}

	var err error
	p.Disabled, err = p.Attributes.PopBool("disabled")
	if err != nil {
		return fmt.Errorf(`failed to read attribute "disabled" of policy: %v`, err)
	}
	return nil
}

// logging allows configuring the log levels of invocations from YAML.
type logging struct {
	Levels struct {
		// Defaults regardless of direction.
		Success          *zapLevel `config:"success"`
		Failure          *zapLevel `config:"failure"`
		ApplicationError *zapLevel `config:"applicationError"`
		ClientError      *zapLevel `config:"clientError"`

		// Directional overrides.
		Reference levels `config:"reference"`
		Service   levels `config:"service"`
	} `config:"levels"`
}

type levels struct {
	Success          *zapLevel `config:"success"`
	Failure          *zapLevel `config:"failure"`
	ApplicationError *zapLevel `config:"applicationError"`
	ClientError      *zapLevel `config:"clientError"`
}

// Fills values from this object into the provided runtime config.
func (l *logging) fill(cfg *sca.Config) {
	cfg.Logging.Levels.Success = (*zapcore.Level)(l.Levels.Success)
	cfg.Logging.Levels.Failure = (*zapcore.Level)(l.Levels.Failure)
	cfg.Logging.Levels.ApplicationError = (*zapcore.Level)(l.Levels.ApplicationError)
	cfg.Logging.Levels.ClientError = (*zapcore.Level)(l.Levels.ClientError)

	l.Levels.Reference.fill(&cfg.Logging.Levels.Reference)
	l.Levels.Service.fill(&cfg.Logging.Levels.Service)
}

func (l *levels) fill(cfg *sca.DirectionalLogLevelConfig) {
	cfg.Success = (*zapcore.Level)(l.Success)
	cfg.Failure = (*zapcore.Level)(l.Failure)
	cfg.ApplicationError = (*zapcore.Level)(l.ApplicationError)
	cfg.ClientError = (*zapcore.Level)(l.ClientError)
}

type zapLevel zapcore.Level

// mapdecode does not support encoding.TextUnmarshaler.
func (l *zapLevel) Decode(into mapdecode.Into) error {
	var s string
	if err := into(&s); err != nil {
		return fmt.Errorf("could not decode Zap log level: %v", err)
	}

	if err := (*zapcore.Level)(l).UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("could not decode Zap log level: %v", err)
	}
	return nil
}
