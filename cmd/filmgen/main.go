package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/reelscore/reelscore/internal/filmgen"
)

// Default configuration constants.
const (
	defaultSubmissions  = 500
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultDuplicatePct = 5
	defaultTestTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9080", "Base URL of the service")
		submissions  = flag.Int("submissions", defaultSubmissions, "Number of film submissions to create and evaluate")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		duplicatePct = flag.Int("duplicates", defaultDuplicatePct, "Percentage of submissions evaluated twice to exercise conflicts")
		outputFile   = flag.String("output", "", "Output file for created submissions (default: generated_submissions_TIMESTAMP.json)")
		logFile      = flag.String("log", "", "Log file for test output (default: filmgen_log_TIMESTAMP.log)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		filmgen.ShowHelp()
		return
	}

	// Setup logging
	if err := filmgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &filmgen.Config{
		BaseURL:        *baseURL,
		NumSubmissions: *submissions,
		Workers:        *workers,
		Timeout:        *timeout,
		DuplicatePct:   *duplicatePct,
		OutputFile:     *outputFile,
		LogFile:        *logFile,
		Verbose:        *verbose,
	}

	// Run the test
	if err := filmgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
