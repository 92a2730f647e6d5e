package filmgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Identity headers the service trusts from its edge proxy.
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// HTTPClient wraps http.Client with timeout and identity headers.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request as the given identity.
func (c *HTTPClient) Get(ctx context.Context, rawURL, userID, role string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerUserID, userID)
	req.Header.Set(headerUserRole, role)
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body as the given identity.
func (c *HTTPClient) Post(ctx context.Context, rawURL, userID, role string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerUserID, userID)
	req.Header.Set(headerUserRole, role)
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// fetchActiveForm retrieves the active rubric definition for a sport,
// seeding the default one on first touch.
func fetchActiveForm(ctx context.Context, client *HTTPClient, config *Config, sport string) (*Form, error) {
	u := config.BaseURL + "/evaluation-forms/active?sport=" + url.QueryEscape(sport)
	resp, err := client.Get(ctx, u, "filmgen-admin", "admin")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active form for %s: %w", sport, err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read form response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("active form request for %s failed with status %d", sport, resp.StatusCode)
	}
	var form Form
	if err := json.Unmarshal(body, &form); err != nil {
		return nil, fmt.Errorf("failed to decode form for %s: %w", sport, err)
	}
	return &form, nil
}

// createSubmissions posts NumSubmissions film submissions as synthetic players.
func createSubmissions(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]createdSubmission, error) {
	log.Printf("creating %d film submissions...", config.NumSubmissions)

	u := config.BaseURL + "/film-submissions"
	created := make([]createdSubmission, 0, config.NumSubmissions)

	for i := 0; i < config.NumSubmissions; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		sport := randomSport()
		playerID := "player_" + uuid.New().String()
		resp, err := client.Post(ctx, u, playerID, "player", generateSubmission(i, sport))
		if err != nil {
			return nil, fmt.Errorf("failed to create submission %d: %w", i, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read submission response: %w", err)
		}
		if resp.StatusCode != http.StatusCreated {
			return nil, fmt.Errorf("submission %d rejected with status %d", i, resp.StatusCode)
		}

		var out struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("failed to decode submission response: %w", err)
		}
		created = append(created, createdSubmission{ID: out.ID, PlayerID: playerID, Sport: sport})
	}

	stats.SubmissionsCreated = len(created)
	log.Printf("created %d submissions", len(created))
	return created, nil
}

// submitEvaluations evaluates every created submission concurrently. A
// configurable percentage is evaluated twice to exercise the one report
// per submission constraint.
func submitEvaluations(ctx context.Context, client *HTTPClient, config *Config, subs []createdSubmission, forms map[string]*Form, stats *Stats) error {
	log.Printf("submitting evaluations for %d submissions with %d workers...", len(subs), config.Workers)

	u := config.BaseURL + "/evaluations"

	var (
		submitted int64
		created   int64
		conflicts int64
		failed    int64
	)

	type job struct {
		index int
		sub   createdSubmission
		dup   bool
	}

	jobChan := make(chan job, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				form := forms[j.sub.Sport]
				eval := generateEvaluation(j.index, j.sub, form)
				evaluatorID := "evaluator_" + uuid.New().String()

				resp, err := client.Post(ctx, u, evaluatorID, "evaluator", eval)
				atomic.AddInt64(&submitted, 1)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				_, _ = readResponseBody(resp)

				switch resp.StatusCode {
				case http.StatusCreated:
					atomic.AddInt64(&created, 1)
				case http.StatusConflict:
					atomic.AddInt64(&conflicts, 1)
				default:
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("evaluation for %s failed with status %d", j.sub.ID, resp.StatusCode)
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for i, sub := range subs {
			dup := config.DuplicatePct > 0 && i%100 < config.DuplicatePct
			select {
			case <-ctx.Done():
				return
			case jobChan <- job{index: i, sub: sub}:
			}
			if dup {
				select {
				case <-ctx.Done():
					return
				case jobChan <- job{index: i, sub: sub, dup: true}:
				}
			}
		}
	}()

	wg.Wait()

	stats.EvaluationsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EvaluationsCreated = int(atomic.LoadInt64(&created))
	stats.ConflictsObserved = int(atomic.LoadInt64(&conflicts))
	stats.EvaluationsFailed = int(atomic.LoadInt64(&failed))

	log.Printf("evaluation submission completed: created=%d conflicts=%d failed=%d",
		stats.EvaluationsCreated, stats.ConflictsObserved, stats.EvaluationsFailed)
	return nil
}
