package claimmapper

import "go.uber.org/zap"

// Logger interface for logging (can be implemented by any logger)
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}

// NoOpLogger is a no-operation logger
type NoOpLogger struct{}

func (n NoOpLogger) Debug(args ...interface{}) {}
func (n NoOpLogger) Info(args ...interface{})  {}
func (n NoOpLogger) Warn(args ...interface{})  {}
func (n NoOpLogger) Error(args ...interface{}) {}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger to Logger. A nil logger yields NoOpLogger.
func NewZapLogger(logger *zap.Logger) Logger {
	if logger == nil {
		return NoOpLogger{}
	}
	return &zapLogger{sugar: logger.Sugar()}
}

func (z *zapLogger) Debug(args ...interface{}) { z.sugar.Debugln(args...) }
func (z *zapLogger) Info(args ...interface{})  { z.sugar.Infoln(args...) }
func (z *zapLogger) Warn(args ...interface{})  { z.sugar.Warnln(args...) }
func (z *zapLogger) Error(args ...interface{}) { z.sugar.Errorln(args...) }

func normalizeLogger(logger Logger) Logger {
	if logger == nil {
		return NoOpLogger{}
	}
	return logger
}
