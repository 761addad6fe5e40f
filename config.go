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
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/net/metrics"
	"go.uber.org/sca/api/domain"
	"go.uber.org/sca/api/provider"
	"go.uber.org/sca/internal/observability"
	"go.uber.org/sca/monitor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config specifies the parameters of a new Runtime constructed via
// NewRuntime.
type Config struct {
	// Name identifies the runtime in logs and metrics.
	Name string

	// NodeURI and DomainURI place the runtime in an SCA domain. Both must
	// be set for references to reach services of other nodes.
	NodeURI   string
	DomainURI string

	// Registry holds the binding, implementation and policy provider
	// factories. The SCA binding and the native implementation type are
	// registered on it unless factories for them are already present.
	//
	// Defaults to a new registry.
	Registry *provider.Registry

	// Domain is the service registry of the domain. Without it, targets
	// that are not deployed in this runtime can not be resolved.
	Domain domain.Registry

	// RegistryTimeout bounds every call to the domain registry.
	//
	// Defaults to one second.
	RegistryTimeout time.Duration

	// Logger is used to log invocations and runtime events.
	//
	// Defaults to a no-op logger.
	Logger *zap.Logger

	// Metrics is the scope under which invocation metrics are registered.
	//
	// Defaults to an unexported scope.
	Metrics *metrics.Scope

	// Tally scope used for pushing to M3 or StatsD-based systems. Only used
	// when Metrics is unset; by default, metrics are collected in memory but
	// not pushed.
	Tally tally.Scope

	// Tracer is used to trace invocations across wires.
	//
	// Defaults to the global opentracing tracer.
	Tracer opentracing.Tracer

	// Monitor receives the problems found while deploying composites.
	//
	// Defaults to a monitor.Collector writing to Logger.
	Monitor monitor.Monitor

	Conversations ConversationConfig

	Logging LoggingConfig
}

// LoggingConfig describes how invocations are logged.
type LoggingConfig struct {
	// Levels specify the levels at which the outcomes of invocations are
	// logged.
	Levels LogLevelConfig
}

// LogLevelConfig configures the levels at which the outcomes of
// invocations are logged, for both directions unless overridden.
//
// Successful calls are logged at debug level by default. Failures are
// logged at error level, errors returned by implementations at warn level.
type LogLevelConfig struct {
	Success          *zapcore.Level
	Failure          *zapcore.Level
	ApplicationError *zapcore.Level
	ClientError      *zapcore.Level

	// Reference and Service override the levels for calls made through
	// references and calls received by services.
	Reference DirectionalLogLevelConfig
	Service   DirectionalLogLevelConfig
}

// DirectionalLogLevelConfig overrides the log levels of one direction.
type DirectionalLogLevelConfig struct {
	Success          *zapcore.Level
	Failure          *zapcore.Level
	ApplicationError *zapcore.Level
	ClientError      *zapcore.Level
}

func (c LogLevelConfig) forDirection(d DirectionalLogLevelConfig) observability.Levels {
	levels := observability.Levels{
		Success:          c.Success,
		Failure:          c.Failure,
		ApplicationError: c.ApplicationError,
		ClientError:      c.ClientError,
	}
	if d.Success != nil {
		levels.Success = d.Success
	}
	if d.Failure != nil {
		levels.Failure = d.Failure
	}
	if d.ApplicationError != nil {
		levels.ApplicationError = d.ApplicationError
	}
	if d.ClientError != nil {
		levels.ClientError = d.ClientError
	}
	return levels
}

// ConversationConfig bounds the lifetime of conversation scoped instances.
// A zero duration disables the corresponding bound.
type ConversationConfig struct {
	// MaxAge ends conversations this long after they were started.
	MaxAge time.Duration

	// MaxIdleTime ends conversations that received no call for this long.
	MaxIdleTime time.Duration

	// ReapInterval is how often expired conversations are looked for.
	//
	// Defaults to one minute.
	ReapInterval time.Duration
}
