package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
	"github.com/reelscore/reelscore/internal/domain/submission"
)

// SQLiteStore implements Store on SQLite. The one-report-per-submission
// invariant lives in the schema as a UNIQUE constraint; claim and
// complete run inside write transactions so concurrent evaluators
// serialize on the database, not on application state.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database at path and applies
// the schema. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps :memory: databases coherent and
	// serializes writers ahead of the driver's busy handler.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS film_submissions (
		id TEXT PRIMARY KEY,
		player_id TEXT NOT NULL,
		player_name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		video_ref TEXT NOT NULL,
		status TEXT NOT NULL,
		assigned_evaluator_id TEXT NOT NULL DEFAULT '',
		assigned_at TIMESTAMP,
		history TEXT NOT NULL DEFAULT '[]',
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS evaluation_reports (
		id TEXT PRIMARY KEY,
		film_submission_id TEXT NOT NULL UNIQUE,
		player_id TEXT NOT NULL,
		evaluator_id TEXT NOT NULL,
		overall_grade INTEGER NOT NULL,
		overall_grade_raw REAL,
		suggested_projection TEXT NOT NULL DEFAULT '',
		rubric TEXT,
		form_id TEXT NOT NULL DEFAULT '',
		strengths TEXT NOT NULL DEFAULT '',
		improvements TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_player ON evaluation_reports(player_id, created_at);

	CREATE TABLE IF NOT EXISTS rubric_forms (
		id TEXT PRIMARY KEY,
		sport TEXT NOT NULL,
		version INTEGER NOT NULL,
		active INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		categories TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS watchlist (
		coach_id TEXT NOT NULL,
		player_id TEXT NOT NULL,
		active_subscription INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (coach_id, player_id)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (*model.FilmSubmission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, player_id, player_name, title, video_ref, status,
		       assigned_evaluator_id, assigned_at, history, created_at
		FROM film_submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

func (s *SQLiteStore) PutSubmission(ctx context.Context, sub *model.FilmSubmission) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.Status == "" {
		sub.Status = model.StatusSubmitted
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = s.now()
	}

	history, err := json.Marshal(sub.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	var assignedAt sql.NullTime
	if sub.AssignedAt != nil {
		assignedAt = sql.NullTime{Time: *sub.AssignedAt, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO film_submissions
			(id, player_id, player_name, title, video_ref, status, assigned_evaluator_id, assigned_at, history, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			player_id = excluded.player_id,
			player_name = excluded.player_name,
			title = excluded.title,
			video_ref = excluded.video_ref,
			status = excluded.status,
			assigned_evaluator_id = excluded.assigned_evaluator_id,
			assigned_at = excluded.assigned_at,
			history = excluded.history`,
		sub.ID, sub.PlayerID, sub.PlayerName, sub.Title, sub.VideoRef, sub.Status,
		sub.AssignedEvaluatorID, assignedAt, string(history), sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("put submission: %w", err)
	}
	return nil
}

// ClaimSubmission applies the claim transition inside a write
// transaction. SQLite serializes writers, so two evaluators racing to
// claim the same unassigned submission resolve to exactly one winner.
func (s *SQLiteStore) ClaimSubmission(ctx context.Context, id, evaluatorID string, role model.Role) (*model.FilmSubmission, error) {
	return s.transition(ctx, id, func(sub *model.FilmSubmission) error {
		if _, err := submission.Claim(sub, evaluatorID, role, s.now()); err != nil {
			if errors.Is(err, submission.ErrAlreadyAssigned) {
				return ErrAlreadyAssigned
			}
			return err
		}
		return nil
	})
}

func (s *SQLiteStore) CompleteSubmission(ctx context.Context, id, evaluatorID string) (*model.FilmSubmission, error) {
	return s.transition(ctx, id, func(sub *model.FilmSubmission) error {
		if err := submission.Complete(sub, evaluatorID, s.now()); err != nil {
			if errors.Is(err, submission.ErrAlreadyCompleted) {
				return ErrCompleted
			}
			return err
		}
		return nil
	})
}

// transition reads a submission, applies mutate, and writes it back in
// one transaction.
func (s *SQLiteStore) transition(ctx context.Context, id string, mutate func(*model.FilmSubmission) error) (*model.FilmSubmission, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transition: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT id, player_id, player_name, title, video_ref, status,
		       assigned_evaluator_id, assigned_at, history, created_at
		FROM film_submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if err != nil {
		return nil, err
	}

	if err := mutate(sub); err != nil {
		return nil, err
	}

	history, err := json.Marshal(sub.History)
	if err != nil {
		return nil, fmt.Errorf("marshal history: %w", err)
	}
	var assignedAt sql.NullTime
	if sub.AssignedAt != nil {
		assignedAt = sql.NullTime{Time: *sub.AssignedAt, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE film_submissions
		SET status = ?, assigned_evaluator_id = ?, assigned_at = ?, history = ?
		WHERE id = ?`,
		sub.Status, sub.AssignedEvaluatorID, assignedAt, string(history), sub.ID)
	if err != nil {
		return nil, fmt.Errorf("write transition: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return sub, nil
}

func (s *SQLiteStore) CreateReport(ctx context.Context, report *model.EvaluationReport) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = s.now()
	}

	var rubricJSON sql.NullString
	if report.Rubric != nil {
		raw, err := json.Marshal(report.Rubric)
		if err != nil {
			return fmt.Errorf("marshal rubric response: %w", err)
		}
		rubricJSON = sql.NullString{String: string(raw), Valid: true}
	}

	var rawGrade sql.NullFloat64
	if report.OverallGradeRaw != nil {
		rawGrade = sql.NullFloat64{Float64: *report.OverallGradeRaw, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluation_reports
			(id, film_submission_id, player_id, evaluator_id, overall_grade, overall_grade_raw,
			 suggested_projection, rubric, form_id, strengths, improvements, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.FilmSubmissionID, report.PlayerID, report.EvaluatorID,
		report.OverallGrade, rawGrade, string(report.SuggestedProjection), rubricJSON,
		report.FormID, report.Strengths, report.Improvements, report.Notes, report.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrReportExists
		}
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes the constraint error a second concurrent
// writer receives; the orchestrator maps it to the AlreadyExists kind.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func (s *SQLiteStore) ReportByFilm(ctx context.Context, filmSubmissionID string) (*model.EvaluationReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, film_submission_id, player_id, evaluator_id, overall_grade, overall_grade_raw,
		       suggested_projection, rubric, form_id, strengths, improvements, notes, created_at
		FROM evaluation_reports WHERE film_submission_id = ?`, filmSubmissionID)
	return scanReport(row)
}

func (s *SQLiteStore) ReportsByPlayer(ctx context.Context, playerID string, limit int) ([]model.EvaluationReport, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, film_submission_id, player_id, evaluator_id, overall_grade, overall_grade_raw,
		       suggested_projection, rubric, form_id, strengths, improvements, notes, created_at
		FROM evaluation_reports
		WHERE player_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.EvaluationReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) CountReports(ctx context.Context) int {
	var n int
	_ = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM evaluation_reports`).Scan(&n)
	return n
}

func (s *SQLiteStore) ActiveForm(ctx context.Context, sport model.Sport) (*rubric.Definition, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sport, version, active, title, categories, created_by, created_at
		FROM rubric_forms WHERE sport = ? AND active = 1 LIMIT 1`, string(sport))
	return scanForm(row)
}

func (s *SQLiteStore) SaveForm(ctx context.Context, def *rubric.Definition) error {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.CreatedAt.IsZero() {
		def.CreatedAt = s.now()
	}
	return s.upsertForm(ctx, s.db, def)
}

func (s *SQLiteStore) ActivateForm(ctx context.Context, def *rubric.Definition) error {
	if def.ID == "" {
		def.ID = uuid.NewString()
	}
	if def.CreatedAt.IsZero() {
		def.CreatedAt = s.now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE rubric_forms SET active = 0 WHERE sport = ? AND id <> ?`,
		string(def.Sport), def.ID); err != nil {
		return fmt.Errorf("deactivate forms: %w", err)
	}

	def.Active = true
	if err := s.upsertForm(ctx, tx, def); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate: %w", err)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) upsertForm(ctx context.Context, db execer, def *rubric.Definition) error {
	categories, err := json.Marshal(def.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	active := 0
	if def.Active {
		active = 1
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO rubric_forms (id, sport, version, active, title, categories, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sport = excluded.sport,
			version = excluded.version,
			active = excluded.active,
			title = excluded.title,
			categories = excluded.categories,
			created_by = excluded.created_by`,
		def.ID, string(def.Sport), def.Version, active, def.Title, string(categories), def.CreatedBy, def.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert form: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Watch(ctx context.Context, coachID, playerID string, activeSubscription bool) error {
	active := 0
	if activeSubscription {
		active = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watchlist (coach_id, player_id, active_subscription)
		VALUES (?, ?, ?)
		ON CONFLICT(coach_id, player_id) DO UPDATE SET active_subscription = excluded.active_subscription`,
		coachID, playerID, active)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ActiveWatchers(ctx context.Context, playerID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT coach_id FROM watchlist
		WHERE player_id = ? AND active_subscription = 1
		ORDER BY coach_id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("query watchers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan watcher: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchers: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*model.FilmSubmission, error) {
	var sub model.FilmSubmission
	var assignedAt sql.NullTime
	var history string

	err := row.Scan(&sub.ID, &sub.PlayerID, &sub.PlayerName, &sub.Title, &sub.VideoRef,
		&sub.Status, &sub.AssignedEvaluatorID, &assignedAt, &history, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan submission: %w", err)
	}

	if assignedAt.Valid {
		at := assignedAt.Time
		sub.AssignedAt = &at
	}
	if err := json.Unmarshal([]byte(history), &sub.History); err != nil {
		return nil, fmt.Errorf("unmarshal history: %w", err)
	}
	return &sub, nil
}

func scanReport(row rowScanner) (*model.EvaluationReport, error) {
	var r model.EvaluationReport
	var rawGrade sql.NullFloat64
	var projection string
	var rubricJSON sql.NullString

	err := row.Scan(&r.ID, &r.FilmSubmissionID, &r.PlayerID, &r.EvaluatorID,
		&r.OverallGrade, &rawGrade, &projection, &rubricJSON, &r.FormID,
		&r.Strengths, &r.Improvements, &r.Notes, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}

	if rawGrade.Valid {
		raw := rawGrade.Float64
		r.OverallGradeRaw = &raw
	}
	r.SuggestedProjection = model.Projection(projection)
	if rubricJSON.Valid {
		var resp model.RubricResponse
		if err := json.Unmarshal([]byte(rubricJSON.String), &resp); err != nil {
			return nil, fmt.Errorf("unmarshal rubric response: %w", err)
		}
		r.Rubric = &resp
	}
	return &r, nil
}

func scanForm(row rowScanner) (*rubric.Definition, error) {
	var def rubric.Definition
	var sport string
	var active int
	var categories string

	err := row.Scan(&def.ID, &sport, &def.Version, &active, &def.Title, &categories, &def.CreatedBy, &def.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan form: %w", err)
	}

	def.Sport = model.Sport(sport)
	def.Active = active == 1
	if err := json.Unmarshal([]byte(categories), &def.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	return &def, nil
}
