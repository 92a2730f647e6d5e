package filmgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// Grade bounds every report must respect.
const (
	minGrade = 1
	maxGrade = 10
)

// verifyReports fetches the report for every evaluated submission and
// checks the scoring invariants.
func verifyReports(ctx context.Context, client *HTTPClient, config *Config, subs []createdSubmission, stats *Stats) error {
	log.Println("verifying evaluation reports...")

	var verified, failures int
	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		u := config.BaseURL + "/evaluations/film/" + sub.ID
		resp, err := client.Get(ctx, u, "filmgen-admin", "admin")
		if err != nil {
			failures++
			continue
		}
		body, err := readResponseBody(resp)
		if err != nil || resp.StatusCode != http.StatusOK {
			failures++
			if config.Verbose {
				log.Printf("report fetch for %s failed with status %d", sub.ID, resp.StatusCode)
			}
			continue
		}

		var report Report
		if err := json.Unmarshal(body, &report); err != nil {
			failures++
			continue
		}
		if err := checkReport(sub, &report); err != nil {
			failures++
			log.Printf("report invariant violation for %s: %v", sub.ID, err)
			continue
		}
		verified++
	}

	stats.ReportsVerified = verified
	stats.VerificationFailures = failures

	if failures > 0 {
		return fmt.Errorf("%d of %d reports failed verification", failures, len(subs))
	}
	log.Printf("verified %d reports", verified)
	return nil
}

// checkReport asserts the invariants a single report must satisfy.
func checkReport(sub createdSubmission, report *Report) error {
	if report.FilmSubmissionID != sub.ID {
		return fmt.Errorf("report references submission %s, expected %s", report.FilmSubmissionID, sub.ID)
	}
	if report.PlayerID != sub.PlayerID {
		return fmt.Errorf("report references player %s, expected %s", report.PlayerID, sub.PlayerID)
	}
	if report.OverallGrade < minGrade || report.OverallGrade > maxGrade {
		return fmt.Errorf("overall grade %d outside [%d, %d]", report.OverallGrade, minGrade, maxGrade)
	}
	if report.EvaluatorID == "" {
		return fmt.Errorf("report has no evaluator")
	}
	return nil
}
