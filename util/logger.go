package util

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the process logger. It writes to stderr so stdout stays free for
// the stdio JSON-RPC stream.
var Logger = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return logger
}

// SetLogLevel parses and applies a logrus level name.
func SetLogLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(parsed)
	return nil
}

// RetryLogger adapts logrus to the leveled logger interface of
// go-retryablehttp.
type RetryLogger struct {
	entry *logrus.Entry
}

// NewRetryLogger returns a leveled logger tagged with the upstream service name.
func NewRetryLogger(service string) *RetryLogger {
	return &RetryLogger{entry: Logger.WithField("service", service)}
}

func (l *RetryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Error(msg)
}

func (l *RetryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l *RetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l *RetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Warn(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		f[key] = keysAndValues[i+1]
	}
	return f
}
