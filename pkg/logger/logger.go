package logger

import (
	"fmt"
	"os"
	"path"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger = zap.NewNop()

	defaultLoggerFilename        = "idgen.log"
	defaultLoggerMaxSizeMb       = 10
	defaultLoggerMaxBackupsCount = 3
	defaultLoggerMaxAgeDays      = 7
)

// MockLogger - replaces the logger with a no-op one.
func MockLogger() {
	logger = zap.NewNop()
}

// InitLogger - initializes the console logger and, when output is set, a rotated JSON log file inside that directory.
func InitLogger(level, output string) error {
	atomicLevel, err := parseLevel(level)
	if err != nil {
		return err
	}

	Init(newCore(atomicLevel, output))
	return nil
}

// Init - initializes logger from a prepared core.
func Init(core zapcore.Core, options ...zap.Option) {
	logger = zap.New(core, options...)
}

func Debug(msg string, fields ...zap.Field) {
	logger.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
}

// Fatal - logs the message and exits the process.
func Fatal(msg string, fields ...zap.Field) {
	logger.Fatal(msg, fields...)
}

// With - returns a child logger carrying the fields.
func With(fields ...zap.Field) *zap.Logger {
	return logger.With(fields...)
}

// Sync - flushes buffered entries.
func Sync() error {
	return logger.Sync()
}

func parseLevel(logLevel string) (zap.AtomicLevel, error) {
	var level zapcore.Level
	if err := level.Set(logLevel); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("failed to set log level '%s': %w", logLevel, err)
	}

	return zap.NewAtomicLevelAt(level), nil
}

func newCore(level zap.AtomicLevel, output string) zapcore.Core {
	var tee []zapcore.Core
	if output != "" {
		productionCfg := zap.NewProductionEncoderConfig()
		productionCfg.TimeKey = "timestamp"
		productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   path.Join(output, defaultLoggerFilename),
			MaxSize:    defaultLoggerMaxSizeMb,
			MaxBackups: defaultLoggerMaxBackupsCount,
			MaxAge:     defaultLoggerMaxAgeDays,
		})
		tee = append(tee, zapcore.NewCore(zapcore.NewJSONEncoder(productionCfg), file, level))
	}

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	tee = append(tee, zapcore.NewCore(
		zapcore.NewConsoleEncoder(developmentCfg), zapcore.AddSync(os.Stdout), level))

	return zapcore.NewTee(tee...)
}
