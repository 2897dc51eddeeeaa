package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func init() {
	InitLogger()
}

// InitLogger resets both loggers to text output at info level.
func InitLogger() {
	ConfigureLogger("info", "text")
}

// ConfigureLogger builds the info (stdout) and error (stderr) loggers.
// Unknown levels fall back to info, unknown formats to text.
func ConfigureLogger(level, format string) {
	InfoLogger = newLogger(os.Stdout, level, format)
	ErrorLogger = newLogger(os.Stderr, "warn", format)
	if lvl, err := logrus.ParseLevel(level); err == nil && lvl >= logrus.DebugLevel {
		ErrorLogger.SetLevel(lvl)
	}
}

// SetOutput redirects both loggers, mostly for tests.
func SetOutput(w io.Writer) {
	InfoLogger.SetOutput(w)
	ErrorLogger.SetOutput(w)
}

func newLogger(out io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
