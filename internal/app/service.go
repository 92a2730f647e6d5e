// Package service provides the evaluation orchestrator: the
// transactional boundary that validates input, runs the scoring engine,
// drives the submission state machine, persists the single report per
// submission, and emits notification events to downstream collaborators.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/reelscore/reelscore/internal/adapters/mq/queue"
	workerpool "github.com/reelscore/reelscore/internal/adapters/mq/worker"
	"github.com/reelscore/reelscore/internal/adapters/repository"
	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/scoring"
	"github.com/reelscore/reelscore/pkg/logger"
	"github.com/reelscore/reelscore/pkg/metrics"
)

// maxReportsPage caps GET /evaluations/player responses.
const maxReportsPage = 200

// EvaluationInput carries an evaluator's submission payload.
type EvaluationInput struct {
	FilmSubmissionID string
	Sport            string
	Position         string
	Rubric           *model.RubricResponse
	OverallGrade     *int
	Strengths        string
	Improvements     string
	Notes            string
}

// Service implements the API dependencies for the evaluation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	eventQueue eventqueue.Queue
	notifier   workerpool.Notifier
	workerPool *workerpool.Pool

	// Configuration
	workerCount  int
	queueSize    int
	storeBackend string
	sqlitePath   string
	baseURL      string

	// State
	started bool

	// Logging
	logger logger.Logger

	now func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of notification workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the notification queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStoreBackend selects the persistence backend: "memory" or "sqlite".
func WithStoreBackend(backend string) Option {
	return func(s *Service) {
		if backend != "" {
			s.storeBackend = backend
		}
	}
}

// WithSQLitePath sets the database path for the sqlite backend.
func WithSQLitePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.sqlitePath = path
		}
	}
}

// WithBaseURL sets the public base URL used in notification deep links.
func WithBaseURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.baseURL = url
		}
	}
}

// WithStore injects a pre-built store. Tests only.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithNotifier injects a custom notifier.
func WithNotifier(n workerpool.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  4,
		queueSize:    10000,
		storeBackend: "memory",
		sqlitePath:   "reelscore.db",
		baseURL:      "https://reelscore.example.com",
		logger:       nil, // set on Start if not provided
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting evaluation service...")

	if s.store == nil {
		switch s.storeBackend {
		case "sqlite":
			store, err := repository.NewSQLiteStore(s.sqlitePath)
			if err != nil {
				return fmt.Errorf("open sqlite store: %w", err)
			}
			s.store = store
			s.logger.Info(ctx, "using sqlite store", logger.String("path", s.sqlitePath))
		default:
			s.store = repository.NewMemoryStore()
			s.logger.Info(ctx, "using memory store")
		}
	}

	s.eventQueue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	if s.notifier == nil {
		s.notifier = workerpool.NewLogNotifier()
	}
	s.workerPool = workerpool.NewPool(s.workerCount, s.eventQueue, s.notifier)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.String("store", s.storeBackend),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping evaluation service...")

	if s.eventQueue != nil {
		if q, ok := s.eventQueue.(*eventqueue.InMemoryQueue); ok {
			_ = q.Close()
		}
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	if s.store != nil {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(ctx, "evaluation service stopped")
}

// SubmitEvaluation runs the whole evaluation workflow: claim the
// submission, resolve the grade, persist the one report, complete the
// submission and fan out notifications.
func (s *Service) SubmitEvaluation(ctx context.Context, evaluatorID string, role model.Role, in EvaluationInput) (*model.EvaluationReport, error) {
	if _, err := s.store.GetSubmission(ctx, in.FilmSubmissionID); err != nil {
		return nil, err
	}

	sub, err := s.store.ClaimSubmission(ctx, in.FilmSubmissionID, evaluatorID, role)
	if err != nil {
		return nil, err
	}
	metrics.RecordSubmissionClaimed()

	// Fast-fail optimization; the store's uniqueness constraint is the
	// actual correctness guarantee under concurrent submitters.
	if _, err := s.store.ReportByFilm(ctx, in.FilmSubmissionID); err == nil {
		metrics.RecordDuplicateReport()
		return nil, repository.ErrReportExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	report := &model.EvaluationReport{
		FilmSubmissionID: sub.ID,
		PlayerID:         sub.PlayerID,
		EvaluatorID:      evaluatorID,
		Rubric:           in.Rubric,
		Strengths:        in.Strengths,
		Improvements:     in.Improvements,
		Notes:            in.Notes,
	}

	if err := s.resolveGrade(ctx, in, report); err != nil {
		return nil, err
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		if errors.Is(err, repository.ErrReportExists) {
			metrics.RecordDuplicateReport()
		}
		return nil, err
	}
	metrics.RecordReportCreated()

	completed, err := s.store.CompleteSubmission(ctx, sub.ID, evaluatorID)
	if err != nil {
		// The report is committed; surface the submission state, not a
		// failure of the evaluation itself.
		s.logger.Error(ctx, "report created but completion failed",
			logger.String("submission", sub.ID),
			logger.Error(err),
		)
		return report, nil
	}
	metrics.RecordSubmissionCompleted()
	metrics.RecordEvaluationSubmitted()

	s.emitCompletionEvents(ctx, completed)

	return report, nil
}

// resolveGrade fills the report's grade fields. An explicit grade wins
// and bypasses the engine entirely; otherwise the active rubric for the
// sport is resolved and scored.
func (s *Service) resolveGrade(ctx context.Context, in EvaluationInput, report *model.EvaluationReport) error {
	if in.OverallGrade != nil {
		g := *in.OverallGrade
		if g < 1 || g > 10 {
			return ErrInvalidGrade
		}
		report.OverallGrade = g
		return nil
	}

	if in.Rubric == nil {
		return ErrGradeRequired
	}

	def, err := s.ActiveForm(ctx, in.Sport)
	if err != nil {
		return fmt.Errorf("resolve active form: %w", err)
	}

	start := s.now()
	result := scoring.Score(def, in.Rubric)
	metrics.RecordScoringLatency(float64(time.Since(start).Milliseconds()))

	raw := result.Raw
	report.OverallGrade = result.Grade
	report.OverallGradeRaw = &raw
	report.SuggestedProjection = result.Projection
	report.FormID = def.ID
	return nil
}

// emitCompletionEvents enqueues the player notification and the
// watchlist fan-out. Fire-and-forget: drops are counted, never fatal.
func (s *Service) emitCompletionEvents(ctx context.Context, sub *model.FilmSubmission) {
	deepLink := fmt.Sprintf("%s/film-submissions/%s", s.baseURL, sub.ID)
	now := s.now()

	s.enqueue(ctx, model.Notification{
		ID:           uuid.NewString(),
		Kind:         model.KindEvaluationCompleted,
		RecipientID:  sub.PlayerID,
		SubmissionID: sub.ID,
		DeepLink:     deepLink,
		FilmTitle:    sub.Title,
		PlayerName:   sub.PlayerName,
		CreatedAt:    now,
	})

	watchers, err := s.store.ActiveWatchers(ctx, sub.PlayerID)
	if err != nil {
		s.logger.Warn(ctx, "watchlist lookup failed",
			logger.String("player", sub.PlayerID),
			logger.Error(err),
		)
		return
	}
	for _, coachID := range watchers {
		s.enqueue(ctx, model.Notification{
			ID:           uuid.NewString(),
			Kind:         model.KindWatchlistEvalCompleted,
			RecipientID:  coachID,
			SubmissionID: sub.ID,
			DeepLink:     deepLink,
			FilmTitle:    sub.Title,
			PlayerName:   sub.PlayerName,
			CreatedAt:    now,
		})
	}
}

func (s *Service) enqueue(ctx context.Context, n model.Notification) {
	if ok := s.eventQueue.Enqueue(ctx, n); !ok {
		s.logger.Warn(ctx, "notification dropped",
			logger.String("kind", string(n.Kind)),
			logger.String("recipient", n.RecipientID),
		)
	}
}

// ReportByFilm fetches the report for a film submission. Players may
// only fetch reports for their own submissions.
func (s *Service) ReportByFilm(ctx context.Context, filmSubmissionID, callerID string, role model.Role) (*model.EvaluationReport, error) {
	report, err := s.store.ReportByFilm(ctx, filmSubmissionID)
	if err != nil {
		return nil, err
	}
	if role == model.RolePlayer && report.PlayerID != callerID {
		return nil, ErrForbidden
	}
	return report, nil
}

// ReportsByPlayer lists a player's reports, newest first, capped at 200.
// Players may only list their own reports.
func (s *Service) ReportsByPlayer(ctx context.Context, playerID, callerID string, role model.Role) ([]model.EvaluationReport, error) {
	if role == model.RolePlayer && playerID != callerID {
		return nil, ErrForbidden
	}
	return s.store.ReportsByPlayer(ctx, playerID, maxReportsPage)
}

// CreateSubmission records a new film submission. Intake belongs to the
// out-of-scope player flow; this is its minimal surface.
func (s *Service) CreateSubmission(ctx context.Context, sub *model.FilmSubmission) (*model.FilmSubmission, error) {
	sub.Status = model.StatusSubmitted
	if err := s.store.PutSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetSubmission returns a film submission by id.
func (s *Service) GetSubmission(ctx context.Context, id string) (*model.FilmSubmission, error) {
	return s.store.GetSubmission(ctx, id)
}

// Watch records that a coach watches a player, with their current
// subscription standing.
func (s *Service) Watch(ctx context.Context, coachID, playerID string, activeSubscription bool) error {
	return s.store.Watch(ctx, coachID, playerID, activeSubscription)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"store":       s.storeBackend,
	}

	if s.started {
		queueLen := s.eventQueue.Len(ctx)
		totalReports := s.store.CountReports(ctx)

		stats["queueLength"] = queueLen
		stats["totalReports"] = totalReports

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalReports(totalReports)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}
