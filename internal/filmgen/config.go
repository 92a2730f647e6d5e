package filmgen

import "time"

// Config holds configuration for the film evaluation load test.
type Config struct {
	BaseURL        string        // Base URL of the service
	NumSubmissions int           // Number of film submissions to create and evaluate
	Workers        int           // Number of concurrent workers
	Timeout        time.Duration // HTTP request timeout
	DuplicatePct   int           // Percentage of submissions evaluated twice to exercise conflicts
	OutputFile     string        // Output file for generated payloads
	LogFile        string        // Log file for test output
	Verbose        bool          // Enable verbose logging
}

// Submission mirrors the POST /film-submissions request body.
type Submission struct {
	Title      string `json:"title"`
	VideoRef   string `json:"video_ref"`
	PlayerName string `json:"player_name,omitempty"`
}

// Evaluation mirrors the POST /evaluations request body.
type Evaluation struct {
	FilmSubmissionID string          `json:"film_submission_id"`
	Sport            string          `json:"sport,omitempty"`
	Position         string          `json:"position,omitempty"`
	Rubric           *RubricResponse `json:"rubric,omitempty"`
	OverallGrade     *int            `json:"overall_grade,omitempty"`
	Strengths        string          `json:"strengths"`
	Improvements     string          `json:"improvements"`
	Notes            string          `json:"notes,omitempty"`
}

// RubricResponse carries the trait values keyed by form category.
type RubricResponse struct {
	Categories []ResponseCategory `json:"categories"`
}

// ResponseCategory holds the answered traits for one category.
type ResponseCategory struct {
	Key    string          `json:"key"`
	Traits []ResponseTrait `json:"traits"`
}

// ResponseTrait is one answered trait.
type ResponseTrait struct {
	Key         string   `json:"key"`
	ValueNumber *float64 `json:"value_number,omitempty"`
	ValueOption *string  `json:"value_option,omitempty"`
}

// Report is the subset of the evaluation report we verify.
type Report struct {
	ID                  string  `json:"id"`
	FilmSubmissionID    string  `json:"film_submission_id"`
	PlayerID            string  `json:"player_id"`
	EvaluatorID         string  `json:"evaluator_id"`
	OverallGrade        int     `json:"overall_grade"`
	SuggestedProjection string  `json:"suggested_projection,omitempty"`
	OverallGradeRaw     float64 `json:"overall_grade_raw,omitempty"`
}

// Form is the subset of an active rubric definition the generator uses.
type Form struct {
	ID         string `json:"id"`
	Sport      string `json:"sport"`
	Categories []struct {
		Key    string `json:"key"`
		Traits []struct {
			Key    string `json:"key"`
			Kind   string `json:"kind"`
			Slider *struct {
				Min  float64 `json:"min"`
				Max  float64 `json:"max"`
				Step float64 `json:"step"`
			} `json:"slider,omitempty"`
			Select *struct {
				Options []struct {
					Value string `json:"value"`
				} `json:"options"`
			} `json:"select,omitempty"`
		} `json:"traits"`
	} `json:"categories"`
}

// createdSubmission tracks a submission made during the run.
type createdSubmission struct {
	ID       string
	PlayerID string
	Sport    string
}

// Stats holds test statistics.
type Stats struct {
	SubmissionsCreated   int
	EvaluationsSubmitted int
	EvaluationsCreated   int
	ConflictsObserved    int
	EvaluationsFailed    int
	ReportsVerified      int
	VerificationFailures int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
