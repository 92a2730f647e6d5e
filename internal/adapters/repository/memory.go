package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
	"github.com/reelscore/reelscore/internal/domain/submission"
)

// MemoryStore implements Store with mutex-guarded maps. The claim
// transition and the report unique index run under the same lock, so
// concurrent evaluators observe the same guarantees the SQLite backend
// gets from conditional updates and UNIQUE constraints.
type MemoryStore struct {
	mu sync.RWMutex

	submissions  map[string]*model.FilmSubmission
	reportByFilm map[string]*model.EvaluationReport
	reports      []*model.EvaluationReport
	forms        map[string]*rubric.Definition
	watchers     map[string]map[string]bool // playerID -> coachID -> active subscription

	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		submissions:  make(map[string]*model.FilmSubmission),
		reportByFilm: make(map[string]*model.EvaluationReport),
		forms:        make(map[string]*rubric.Definition),
		watchers:     make(map[string]map[string]bool),
		now:          time.Now,
	}
}

// SetClock overrides the store clock. Tests only.
func (s *MemoryStore) SetClock(now func() time.Time) { s.now = now }

func (s *MemoryStore) GetSubmission(_ context.Context, id string) (*model.FilmSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySubmission(sub), nil
}

func (s *MemoryStore) PutSubmission(_ context.Context, sub *model.FilmSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = model.StatusSubmitted
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
	}
	s.submissions[sub.ID] = copySubmission(sub)
	return nil
}

func (s *MemoryStore) ClaimSubmission(_ context.Context, id, evaluatorID string, role model.Role) (*model.FilmSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}

	if _, err := submission.Claim(sub, evaluatorID, role, s.now()); err != nil {
		if errors.Is(err, submission.ErrAlreadyAssigned) {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}
	return copySubmission(sub), nil
}

func (s *MemoryStore) CompleteSubmission(_ context.Context, id, evaluatorID string) (*model.FilmSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}

	if err := submission.Complete(sub, evaluatorID, s.now()); err != nil {
		if errors.Is(err, submission.ErrAlreadyCompleted) {
			return nil, ErrCompleted
		}
		return nil, err
	}
	return copySubmission(sub), nil
}

func (s *MemoryStore) CreateReport(_ context.Context, report *model.EvaluationReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Unique index on film submission id; this is the correctness
	// guarantee, the orchestrator's existence check is only fast-fail.
	if _, exists := s.reportByFilm[report.FilmSubmissionID]; exists {
		return ErrReportExists
	}

	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = s.now()
	}

	stored := copyReport(report)
	s.reportByFilm[report.FilmSubmissionID] = stored
	s.reports = append(s.reports, stored)
	return nil
}

func (s *MemoryStore) ReportByFilm(_ context.Context, filmSubmissionID string) (*model.EvaluationReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reportByFilm[filmSubmissionID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyReport(r), nil
}

func (s *MemoryStore) ReportsByPlayer(_ context.Context, playerID string, limit int) ([]model.EvaluationReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.EvaluationReport
	for _, r := range s.reports {
		if r.PlayerID == playerID {
			out = append(out, *copyReport(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) CountReports(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

func (s *MemoryStore) ActiveForm(_ context.Context, sport model.Sport) (*rubric.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, def := range s.forms {
		if def.Sport == sport && def.Active {
			return copyForm(def), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveForm(_ context.Context, def *rubric.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.CreatedAt.IsZero() {
		def.CreatedAt = s.now()
	}
	s.forms[def.ID] = copyForm(def)
	return nil
}

func (s *MemoryStore) ActivateForm(_ context.Context, def *rubric.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.CreatedAt.IsZero() {
		def.CreatedAt = s.now()
	}

	// One active definition per sport: flip the others off under the
	// same lock so no reader ever sees two active.
	for _, other := range s.forms {
		if other.Sport == def.Sport && other.ID != def.ID {
			other.Active = false
		}
	}
	def.Active = true
	s.forms[def.ID] = copyForm(def)
	return nil
}

func (s *MemoryStore) Watch(_ context.Context, coachID, playerID string, activeSubscription bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watchers[playerID] == nil {
		s.watchers[playerID] = make(map[string]bool)
	}
	s.watchers[playerID][coachID] = activeSubscription
	return nil
}

func (s *MemoryStore) ActiveWatchers(_ context.Context, playerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for coachID, active := range s.watchers[playerID] {
		if active {
			out = append(out, coachID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Close releases nothing for the in-memory backend.
func (s *MemoryStore) Close() error { return nil }

func copySubmission(sub *model.FilmSubmission) *model.FilmSubmission {
	cp := *sub
	cp.History = append([]model.HistoryEntry(nil), sub.History...)
	if sub.AssignedAt != nil {
		at := *sub.AssignedAt
		cp.AssignedAt = &at
	}
	return &cp
}

func copyReport(r *model.EvaluationReport) *model.EvaluationReport {
	cp := *r
	if r.OverallGradeRaw != nil {
		raw := *r.OverallGradeRaw
		cp.OverallGradeRaw = &raw
	}
	if r.Rubric != nil {
		rub := model.RubricResponse{Categories: append([]model.ResponseCategory(nil), r.Rubric.Categories...)}
		for i := range rub.Categories {
			rub.Categories[i].Traits = append([]model.ResponseTrait(nil), r.Rubric.Categories[i].Traits...)
		}
		cp.Rubric = &rub
	}
	return &cp
}

func copyForm(def *rubric.Definition) *rubric.Definition {
	cp := *def
	cp.Categories = append([]rubric.Category(nil), def.Categories...)
	for i := range cp.Categories {
		cp.Categories[i].Traits = append([]rubric.Trait(nil), def.Categories[i].Traits...)
	}
	return &cp
}
