package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	// LogFileName, when set, adds a rotated file next to stdout.
	LogFileName string
	Debug       bool
}

// New returns a JSON slog logger and the underlying file writer, if any, so
// the caller can close it on shutdown.
func New(params LoggerSetupParams, stdout io.Writer) (*slog.Logger, io.Closer) {
	if stdout == nil {
		stdout = os.Stdout
	}

	programLevel := slog.LevelInfo
	if params.Debug {
		programLevel = slog.LevelDebug
	}

	var (
		w      = stdout
		closer io.Closer
	)
	if params.LogFileName != "" {
		lj := &lumberjack.Logger{
			Filename:  params.LogFileName,
			MaxSize:   50,    // megabytes
			LocalTime: false, // false -> use UTC
			Compress:  true,
		}
		w = io.MultiWriter(stdout, lj)
		closer = lj
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: programLevel})), closer
}
