package filmgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/reelscore/reelscore/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// settleDelay gives the notification pipeline time to drain before
// verification reads.
const settleDelay = 2 * time.Second

// Run executes the complete evaluation load test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting reelscore film evaluation test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("submissions", config.NumSubmissions),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("duplicatePct", config.DuplicatePct),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Fetch (and thereby seed) the active form for every sport
	forms := make(map[string]*Form, len(sports))
	for _, sport := range sports {
		form, err := fetchActiveForm(ctx, client, config, sport)
		if err != nil {
			return fmt.Errorf("form fetch failed: %w", err)
		}
		forms[sport] = form
	}
	log.Printf("loaded active forms for %d sports", len(forms))

	// Step 3: Create film submissions as synthetic players
	subs, err := createSubmissions(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("submission creation failed: %w", err)
	}

	// Step 4: Evaluate them concurrently
	if err := submitEvaluations(ctx, client, config, subs, forms, stats); err != nil {
		return fmt.Errorf("evaluation submission failed: %w", err)
	}

	// Step 5: Let the notification pipeline settle
	time.Sleep(settleDelay)

	// Step 6: Verify the resulting reports
	if err := verifyReports(ctx, client, config, subs, stats); err != nil {
		return fmt.Errorf("report verification failed: %w", err)
	}

	// Step 7: Save created submissions to file
	if err := saveSubmissionsToFile(ctx, config, subs); err != nil {
		logger.Get().Warn(ctx, "failed to save submissions to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz", "filmgen-admin", "admin")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSubmissionsToFile saves the created submissions to a JSON file.
func saveSubmissionsToFile(ctx context.Context, config *Config, subs []createdSubmission) error {
	if len(subs) == 0 {
		return fmt.Errorf("no submissions to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_submissions_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	type record struct {
		ID       string `json:"id"`
		PlayerID string `json:"player_id"`
		Sport    string `json:"sport"`
	}
	records := make([]record, len(subs))
	for i, s := range subs {
		records[i] = record{ID: s.ID, PlayerID: s.PlayerID, Sport: s.Sport}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submissions: %w", err)
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, perSecond float64

	if stats.EvaluationsSubmitted > 0 {
		successRate = float64(stats.EvaluationsCreated) / float64(stats.EvaluationsSubmitted) * 100
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.EvaluationsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("submissionsCreated", stats.SubmissionsCreated),
		logger.Int("evaluationsSubmitted", stats.EvaluationsSubmitted),
		logger.Int("evaluationsCreated", stats.EvaluationsCreated),
		logger.Int("conflictsObserved", stats.ConflictsObserved),
		logger.Int("evaluationsFailed", stats.EvaluationsFailed),
		logger.Int("reportsVerified", stats.ReportsVerified),
		logger.Int("verificationFailures", stats.VerificationFailures),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("evaluationsPerSecond", perSecond))
}
