package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const (
	defaultTimeFormat = "15:04:05"
	logFileName       = "finhealth.log"
)

var (
	globalLogger arbor.ILogger
	loggerMutex  sync.RWMutex
)

// GetLogger returns the global logger, creating a console logger on first use
// so config loading can report errors before InitLogger runs.
func GetLogger() arbor.ILogger {
	loggerMutex.RLock()
	if globalLogger != nil {
		loggerMutex.RUnlock()
		return globalLogger
	}
	loggerMutex.RUnlock()

	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if globalLogger == nil {
		globalLogger = arbor.NewLogger().WithConsoleWriter(consoleWriter(defaultTimeFormat))
	}
	return globalLogger
}

// LogDir returns the directory for log and crash files.
func LogDir(config *Config) (string, error) {
	if dir := strings.TrimSpace(config.Logging.Dir); dir != "" {
		return dir, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), "logs"), nil
}

// logOutputs reports which writers the config asks for. "console" is accepted
// as an alias for stdout.
func logOutputs(outputs []string) (file, console bool) {
	for _, output := range outputs {
		switch strings.ToLower(strings.TrimSpace(output)) {
		case "file":
			file = true
		case "stdout", "console":
			console = true
		}
	}
	return file, console
}

func consoleWriter(timeFormat string) models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeConsole,
		TimeFormat: timeFormat,
	}
}

func fileWriter(dir, timeFormat string) models.WriterConfiguration {
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeFile,
		FileName:   filepath.Join(dir, logFileName),
		TimeFormat: timeFormat,
		MaxSize:    100 * 1024 * 1024, // 100 MB
		MaxBackups: 3,
	}
}

// InitLogger builds the global logger from the logging section. A failure to
// prepare the log directory drops the file writer and keeps the console one.
func InitLogger(config *Config) arbor.ILogger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	logger := arbor.NewLogger()

	timeFormat := config.Logging.TimeFormat
	if timeFormat == "" {
		timeFormat = defaultTimeFormat
	}

	toFile, toConsole := logOutputs(config.Logging.Output)

	if toFile {
		dir, err := LogDir(config)
		if err == nil {
			err = os.MkdirAll(dir, 0755)
		}
		if err != nil {
			fmt.Printf("Warning: file logging disabled: %v\n", err)
			toConsole = true
		} else {
			logger = logger.WithFileWriter(fileWriter(dir, timeFormat))
		}
	}

	if toConsole {
		logger = logger.WithConsoleWriter(consoleWriter(timeFormat))
	}

	logger = logger.WithLevelFromString(config.Logging.Level)
	globalLogger = logger

	return logger
}

// GetLogFilePath returns the active log file path, or "" when logging to console only
func GetLogFilePath(logger arbor.ILogger) string {
	if logger == nil {
		return ""
	}
	return logger.GetLogFilePath()
}
