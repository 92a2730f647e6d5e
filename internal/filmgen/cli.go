package filmgen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/reelscore/reelscore/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "filmgen_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the filmgen tool.
func ShowHelp() {
	os.Stdout.WriteString(`ReelScore Film Evaluation Test Tool
===================================

A concurrent tool for exercising the film evaluation workflow end to end:
it creates film submissions, evaluates them against the active rubric
forms, and verifies the resulting reports.

Usage:
  go run cmd/filmgen/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -submissions int
        Number of film submissions to create and evaluate (default 500)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -duplicates int
        Percentage of submissions evaluated twice to exercise conflicts (default 5)
  -output string
        Output file for created submissions (default: generated_submissions_TIMESTAMP.json)
  -log string
        Log file for test output (default: filmgen_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Test with default settings
  go run cmd/filmgen/main.go

  # Larger run against a remote instance
  go run cmd/filmgen/main.go -submissions 5000 -workers 16 -url http://reelscore:9080

  # Conflict-heavy run with verbose output
  go run cmd/filmgen/main.go -duplicates 50 -verbose
`)
}
