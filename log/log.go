// Package log is a thin severity facade over logrus writing dated files
// under the application log directory.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/key"
	"github.com/trakr-cli/trakr/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Setup points logrus at today's log file, or at io.Discard when file
// logging is switched off. Nothing may log before this ran.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logrus.SetOutput(io.Discard)
		return nil
	}

	name := time.Now().Format("2006-01-02") + ".log"
	file, err := filesystem.API().OpenFile(
		filepath.Join(where.Logs(), name),
		os.O_WRONLY|os.O_CREATE|os.O_APPEND,
		0644,
	)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(file)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

func Error(args ...any) {
	logrus.Error(args...)
}

func Errorf(format string, args ...any) {
	logrus.Errorf(format, args...)
}

func Warn(args ...any) {
	logrus.Warn(args...)
}

func Warnf(format string, args ...any) {
	logrus.Warnf(format, args...)
}

func Info(args ...any) {
	logrus.Info(args...)
}

func Infof(format string, args ...any) {
	logrus.Infof(format, args...)
}

func Debug(args ...any) {
	logrus.Debug(args...)
}

func Debugf(format string, args ...any) {
	logrus.Debugf(format, args...)
}
