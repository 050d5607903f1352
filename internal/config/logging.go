package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

type LogFile struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

func NewLogFile() (*LogFile, bool, error) {
	filename, ok := os.LookupEnv("LOG_FILE")
	if !ok || filename == "" {
		return nil, false, nil
	}
	f := &LogFile{
		Filename:   filename,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
	}
	if s, ok := os.LookupEnv("LOG_FILE_MAX_SIZE"); ok {
		size, err := strconv.Atoi(s)
		if err != nil {
			return nil, false, fmt.Errorf("unable to convert LOG_FILE_MAX_SIZE to int: %w", err)
		}
		f.MaxSize = size
	}
	return f, true, nil
}

// NewLogger logs colored text at debug level in development and JSON at
// info level otherwise. With LOG_FILE set, entries are also written to a
// rotated JSON log file.
func NewLogger() (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if Development() {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	f, ok, err := NewLogFile()
	if err != nil {
		return nil, err
	}
	if ok {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   f.Filename,
			MaxSize:    f.MaxSize,
			MaxBackups: f.MaxBackups,
			MaxAge:     f.MaxAge,
			Level:      logger.GetLevel(),
			Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
		})
		if err != nil {
			return nil, fmt.Errorf("unable to create log file hook: %w", err)
		}
		logger.AddHook(hook)
	}

	return logger, nil
}
