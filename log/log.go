// Package log provides the application's logrus-backed logging with daily files under the config directory.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hlsplay/hlsplay/filesystem"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// enabled is false until Setup succeeds with logs.write turned on; every emission below is a
// no-op while it is false.
var enabled bool

// Setup opens today's log file and applies the configured format and level.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		enabled = false
		return fmt.Errorf("open log file: %w", err)
	}

	configure(f)
	return nil
}

// SetupWriter enables logging into w, bypassing the log file. Used by tests and the probe
// command's --verbose flag.
func SetupWriter(w io.Writer) {
	enabled = true
	configure(w)
}

func configure(w io.Writer) {
	logrus.SetOutput(w)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Fields is an alias so callers don't import logrus for structured entries.
type Fields = logrus.Fields

// WithFields returns an entry carrying fields. When logging is disabled the entry writes to
// io.Discard.
func WithFields(fields Fields) *logrus.Entry {
	if !enabled {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		return discard.WithFields(fields)
	}
	return logrus.WithFields(fields)
}

func Error(args ...interface{}) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...interface{}) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warn(args ...interface{}) {
	if enabled {
		logrus.Warn(args...)
	}
}

func Warnf(format string, args ...interface{}) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Info(args ...interface{}) {
	if enabled {
		logrus.Info(args...)
	}
}

func Infof(format string, args ...interface{}) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debug(args ...interface{}) {
	if enabled {
		logrus.Debug(args...)
	}
}

func Debugf(format string, args ...interface{}) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
