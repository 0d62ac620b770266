package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// NamedLogger creates named package logger.
func NamedLogger(name string) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &CustomTextFormatter{
		logrus.TextFormatter{
			ForceColors: true,
		},
		name,
	}
	logger.Level = logrus.InfoLevel
	return logger
}

// CustomTextFormatter ...
type CustomTextFormatter struct {
	logrus.TextFormatter

	name string
}

// Format renders a single log entry
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Message = fmt.Sprintf("[%-10s] %s", f.name, entry.Message)
	return f.TextFormatter.Format(entry)
}
