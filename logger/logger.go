// Package logger sets up zerolog for the command line tools.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Level      string `yaml:"level"`
	Debug      bool   `yaml:"debug"`
	Output     string `yaml:"output"`
	TimeFormat string `yaml:"time_format"`
}

// New builds a logger from config. Output is "stdout" or "stderr", with
// stderr as the default so reports on stdout stay clean.
func New(config Config) (zerolog.Logger, error) {
	var output io.Writer = os.Stderr
	if config.Output == "stdout" {
		output = os.Stdout
	}

	level := zerolog.InfoLevel
	if config.Debug {
		level = zerolog.DebugLevel
	} else if config.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(config.Level)
		if err != nil {
			return zerolog.Nop(), err
		}
	}

	timeFormat := time.RFC3339
	if config.TimeFormat != "" {
		timeFormat = config.TimeFormat
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: output, TimeFormat: timeFormat}).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}
