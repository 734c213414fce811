package contract

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger     *logrus.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger. It writes to stderr so that stdout
// stays reserved for results and the MCP protocol.
func Logger() *logrus.Logger {
	loggerOnce.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
		logger.SetLevel(levelFromEnv())
	})
	return logger
}

// SetVerbose switches the logger to debug level.
func SetVerbose(verbose bool) {
	if verbose {
		Logger().SetLevel(logrus.DebugLevel)
	}
}

// levelFromEnv reads COAUTHOR_LOG_LEVEL, defaulting to warn.
func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("COAUTHOR_LOG_LEVEL"))
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
