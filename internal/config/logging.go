package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging configures the standard logger: JSON in Lambda and in
// production, colored text locally.
func SetupLogging(cfg *Config) *logrus.Logger {
	logger := logrus.StandardLogger()
	logger.SetOutput(os.Stdout)

	if IsServerlessMode() || cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
