package logger

import (
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds the process logger: JSON lines on stdout, level parsed from
// level ("warn", "debug", ...) with info as the fallback.
func New(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyMsg: "message",
		},
	})

	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil || lvl > logrus.TraceLevel || lvl < logrus.ErrorLevel {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
