// Package logger provides the process-wide structured logger. Every helper
// is safe to call before Init, in which case the message is dropped.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/foundersandcoders/lift/internal/constants"
)

// Logger is the global logger instance
var Logger *log.Logger

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
	// Output overrides the rotating log file, mostly for tests.
	Output io.Writer
}

// LogFile returns the path of the rotating log file under configDir.
func LogFile(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

// Init initializes the global logger with the given configuration
func Init(cfg Config) error {
	writer := cfg.Output
	if writer == nil {
		logFile := LogFile(cfg.ConfigDir)
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return err
		}
		// 5 MB per file, two weeks of history
		writer = &lumberjack.Logger{Filename: logFile, MaxSize: 5, MaxBackups: 5, MaxAge: 14, Compress: true}
	}

	level := log.InfoLevel
	if cfg.Debug {
		level = log.DebugLevel
		// stderr gets a copy only in debug mode so the TUI stays clean
		writer = io.MultiWriter(os.Stderr, writer)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		CallerOffset:    1, // emit sits between the level helper and Log
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func emit(level log.Level, msg string, keyvals []any) {
	if Logger != nil {
		Logger.Log(level, msg, keyvals...)
	}
}

func Debug(msg string, keyvals ...any) { emit(log.DebugLevel, msg, keyvals) }
func Info(msg string, keyvals ...any)  { emit(log.InfoLevel, msg, keyvals) }
func Warn(msg string, keyvals ...any)  { emit(log.WarnLevel, msg, keyvals) }
func Error(msg string, keyvals ...any) { emit(log.ErrorLevel, msg, keyvals) }
