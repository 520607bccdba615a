package main

import (
	"fmt"

	"github.com/mattermost/logr/v2"
	"github.com/mattermost/mattermost/server/public/plugin"
)

// Logger interface for logging operations
type Logger interface {
	LogDebug(message string, keyValuePairs ...any)
	LogInfo(message string, keyValuePairs ...any)
	LogWarn(message string, keyValuePairs ...any)
	LogError(message string, keyValuePairs ...any)
}

// PluginAPILogger adapts the plugin.API to implement the Logger interface
type PluginAPILogger struct {
	api plugin.API
}

// NewPluginAPILogger creates a new PluginAPILogger
func NewPluginAPILogger(api plugin.API) Logger {
	return &PluginAPILogger{api: api}
}

// LogDebug logs a debug message
func (l *PluginAPILogger) LogDebug(message string, keyValuePairs ...any) {
	l.api.LogDebug(message, keyValuePairs...)
}

// LogInfo logs an info message
func (l *PluginAPILogger) LogInfo(message string, keyValuePairs ...any) {
	l.api.LogInfo(message, keyValuePairs...)
}

// LogWarn logs a warning message
func (l *PluginAPILogger) LogWarn(message string, keyValuePairs ...any) {
	l.api.LogWarn(message, keyValuePairs...)
}

// LogError logs an error message
func (l *PluginAPILogger) LogError(message string, keyValuePairs ...any) {
	l.api.LogError(message, keyValuePairs...)
}

// TeeLogger writes every entry to the plugin log and to a logr transaction log.
type TeeLogger struct {
	primary     Logger
	transaction logr.Logger
}

// NewTeeLogger creates a Logger that mirrors primary into transaction.
func NewTeeLogger(primary Logger, transaction logr.Logger) Logger {
	return &TeeLogger{primary: primary, transaction: transaction}
}

// LogDebug logs a debug message
func (l *TeeLogger) LogDebug(message string, keyValuePairs ...any) {
	l.primary.LogDebug(message, keyValuePairs...)
	l.transaction.Debug(message, toFields(keyValuePairs)...)
}

// LogInfo logs an info message
func (l *TeeLogger) LogInfo(message string, keyValuePairs ...any) {
	l.primary.LogInfo(message, keyValuePairs...)
	l.transaction.Info(message, toFields(keyValuePairs)...)
}

// LogWarn logs a warning message
func (l *TeeLogger) LogWarn(message string, keyValuePairs ...any) {
	l.primary.LogWarn(message, keyValuePairs...)
	l.transaction.Warn(message, toFields(keyValuePairs)...)
}

// LogError logs an error message
func (l *TeeLogger) LogError(message string, keyValuePairs ...any) {
	l.primary.LogError(message, keyValuePairs...)
	l.transaction.Error(message, toFields(keyValuePairs)...)
}

// toFields turns alternating key/value pairs into logr fields. A dangling key
// is kept with an empty value.
func toFields(keyValuePairs []any) []logr.Field {
	fields := make([]logr.Field, 0, (len(keyValuePairs)+1)/2)
	for i := 0; i < len(keyValuePairs); i += 2 {
		key := fmt.Sprint(keyValuePairs[i])
		var value any
		if i+1 < len(keyValuePairs) {
			value = keyValuePairs[i+1]
		}
		fields = append(fields, logr.Any(key, value))
	}
	return fields
}
