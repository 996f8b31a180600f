// Package ctxhelper provides helper functions for working with the context
package ctxhelper

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var (
	// KeyLogger is the context key for storing the logger in the context
	KeyLogger = ctxKey("logger")
	// KeyRequestID is the context key for the ID generated for an incoming request
	KeyRequestID = ctxKey("requestID")
)

// internal context key
type ctxKey string

// Logger returns the logger from the current context. If no logger is available, it panics
func Logger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(KeyLogger).(*logrus.Entry)
	if ok {
		return logger
	}
	panic("No logger in context")
}

// WithLogger returns a copy of the context carrying the given logger
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// RequestID returns the ID of the current request or an empty string outside of a request
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(KeyRequestID).(string)
	return id
}
