package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the configuration for the logger
type Config struct {
	Level         string `yaml:"level"          json:"level"`
	FilePath      string `yaml:"file_path"      json:"file_path"`
	Format        string `yaml:"format"         json:"format"`
	WithTrace     bool   `yaml:"with_trace"     json:"with_trace"`
	EnableConsole bool   `yaml:"enable_console" json:"enable_console"`

	// Console defaults to os.Stderr.
	Console io.Writer `yaml:"-" json:"-"`
}

func baseEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func newConsoleCore(level zapcore.LevelEnabler, w io.Writer) zapcore.Core {
	consoleEncoderConfig := baseEncoderConfig()
	consoleEncoderConfig.NameKey = ""
	consoleEncoderConfig.EncodeCaller = nil
	consoleEncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("15:04:05"))
	}

	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig),
		zapcore.AddSync(w),
		level,
	)
}

// Initialize sets up the global logger with the given configuration
func Initialize(config Config) error {
	logLevel := config.Level
	if logLevel == "" {
		logLevel = InfoLogLevel
	}
	level := zap.NewAtomicLevelAt(getZapLevel(logLevel))

	var cores []zapcore.Core

	if config.EnableConsole {
		w := config.Console
		if w == nil {
			w = os.Stderr
		}
		cores = append(cores, newConsoleCore(level, w))
	}

	if config.FilePath != "" {
		encoderConfig := baseEncoderConfig()
		var encoder zapcore.Encoder
		if config.Format == "json" {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		} else {
			encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder // No colors in file
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		}

		file, err := os.OpenFile(
			config.FilePath,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			LogFilePermissions,
		)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		if GlobalLogFile != nil {
			_ = GlobalLogFile.Close()
		}
		GlobalLogFile = file

		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(2)}
	if config.WithTrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	l := zap.New(zapcore.NewTee(cores...), opts...).Named(LoggerName)
	SetGlobalLogger(&Logger{Logger: l})

	return nil
}

// Close flushes the global logger and releases the log file, if any.
func Close() {
	Get().Sync()
	if GlobalLogFile != nil {
		_ = GlobalLogFile.Close()
		GlobalLogFile = nil
	}
}
