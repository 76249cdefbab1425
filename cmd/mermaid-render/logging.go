// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the diagnostic logger. Progress output is separate and
// always goes to stdout; this logger carries per-request details and
// warnings. With a file, logs rotate at 10 MB keeping three backups.
// The returned close func releases the log file and is safe to call when
// logging to stderr.
func newLogger(level, file string, stderr io.Writer) (*logrus.Logger, func() error, error) {
	logger := logrus.New()

	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "info":
		logger.SetLevel(logrus.InfoLevel)
	case "", "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		return nil, nil, fmt.Errorf("unknown log level %q (want debug, info, warn, or error)", level)
	}

	if file != "" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
		rotator := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		logger.SetOutput(rotator)
		return logger, rotator.Close, nil
	}

	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetOutput(stderr)
	return logger, func() error { return nil }, nil
}
