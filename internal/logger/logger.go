// Package logger wraps logrus with the fields the server emits everywhere.
package logger

import (
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger.
type Logger struct {
	*logrus.Entry
}

// New builds a logger from PULSO_ENV and PULSO_LOG_LEVEL. Development gets a
// readable console format; everything else emits JSON for log shippers.
func New() *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)

	if env := os.Getenv("PULSO_ENV"); env == "" || env == "dev" {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	level, err := logrus.ParseLevel(os.Getenv("PULSO_LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	return &Logger{Entry: logrus.NewEntry(base)}
}

// WithRequest tags an entry with the request identity. The request id comes
// from X-Request-ID when a proxy already assigned one.
func (l *Logger) WithRequest(r *http.Request) *logrus.Entry {
	id := r.Header.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}
	return l.WithFields(logrus.Fields{
		"request_id": id,
		"method":     r.Method,
		"path":       r.URL.Path,
		"remote":     r.RemoteAddr,
	})
}

// WithError tags an entry with a normalized error field.
func (l *Logger) WithError(err error) *logrus.Entry {
	if err == nil {
		return l.Entry
	}
	return l.Entry.WithField("error", err.Error())
}
