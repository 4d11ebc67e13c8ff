// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the global logger for the whole application
var Log *logrus.Logger

var mu sync.Mutex

// Init configures the global logger from LOG_LEVEL (default "info") and
// LOG_FORMAT ("json" or text). Logs go to stderr so that stdout stays free
// for the MCP stdio transport and the interactive CLI.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	Log = newLogger(os.Stderr)
}

// Get returns the global logger, initializing it on first use
func Get() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if Log == nil {
		Log = newLogger(os.Stderr)
	}
	return Log
}

// SetOutput redirects the global logger, mainly for tests
func SetOutput(w io.Writer) {
	Get().SetOutput(w)
}

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	l.SetOutput(w)
	return l
}
