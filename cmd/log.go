package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Verbose = flag.Bool("v", false, "Enable debug logs")
var logFormat = flag.String("log-format", "pretty", "Format of the logs on stderr: pretty or json")
var logFile = flag.String("log-file", "", "Also append logs to this file, rotated when it grows too large")

// InitLogging configures the global logger from the flags and the environment.
//
// Logs are diagnostics, they go to stderr, the command results go to stdout.
func InitLogging() error {
	level := zerolog.WarnLevel
	if env := os.Getenv(EnvLogLevel); env != "" {
		l, err := zerolog.ParseLevel(env)
		if err != nil {
			return fmt.Errorf("invalid log level in %s: %w", EnvLogLevel, err)
		}
		level = l
	}
	if *Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	switch *logFormat {
	case "pretty":
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	case "json":
		writers = append(writers, os.Stderr)
	default:
		return fmt.Errorf("invalid log format %q, valid formats are pretty and json", *logFormat)
	}
	if *logFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return nil
}
