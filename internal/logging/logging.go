package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Dir returns ~/.dealboard/logs
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".dealboard", "logs"), nil
}

// Init initializes the logging system, writing logs to
// ~/.dealboard/logs/dealboard.log. Uses text format for human readability.
// The terminal belongs to the board, so nothing is written to stderr.
func Init(level slog.Level) (io.Closer, error) {
	logDir, err := Dir()
	if err != nil {
		return nil, err
	}
	return InitFile(filepath.Join(logDir, "dealboard.log"), level)
}

// InitFile is Init with an explicit log file path
func InitFile(logPath string, level slog.Level) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	install(file, level)
	return file, nil
}

// InitStderr logs to stderr, for the daemon
func InitStderr(level slog.Level) {
	install(os.Stderr, level)
}

func install(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same place
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags)
}
