// file: logger/logger.go

package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger instance.
// It must be initialized with Init() before use.
var Log *logrus.Logger

// Init configures the global logger. JSON output keeps the logs
// machine-parseable in production; the level can later be made configurable.
func Init() {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetLevel(logrus.InfoLevel)
}
