package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/uicontract/config"
)

// Init initializes the standard logger based on the configuration.
// The "stderr" output and file open failures write to stderr; nil selects os.Stderr.
func Init(cfg config.LoggingConfig, stderr io.Writer) {
	if stderr == nil {
		stderr = os.Stderr
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("invalid log level '%s', using 'info' instead: %v", cfg.Level, err)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	case "", "stderr":
		output = stderr
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			logrus.Warnf("failed to open log file '%s', using 'stderr' instead: %v", cfg.Output, err)
			output = stderr
		} else {
			output = file
		}
	}
	logrus.SetOutput(output)
	logrus.Debug("logger initialized")
}
