package logging

import (
	"context"

	"github.com/goliatone/go-datakit/pkg/interfaces"
)

const (
	rootModule      = "datakit"
	taskQueueModule = "datakit.taskqueue"
	codecModule     = "datakit.codec"
	fsModule        = "datakit.fsutil"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// TaskQueueLogger returns the logger namespace reserved for the task queue.
func TaskQueueLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, taskQueueModule)
}

// CodecLogger returns the logger namespace reserved for codec operations.
func CodecLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, codecModule)
}

// FSLogger returns the logger namespace reserved for filesystem helpers.
func FSLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fsModule)
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
