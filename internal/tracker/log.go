package tracker

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger replaces the package logger. Call it before concurrent use.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
