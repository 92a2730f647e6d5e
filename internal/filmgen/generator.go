package filmgen

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 8
)

// Performance profile cases shaping the slider distribution.
const (
	caseAveragePerformer = 0
	caseHighPerformer    = 1
	caseLowPerformer     = 2
	caseElitePerformer   = 3
	caseVeryLowPerformer = 4
	caseMidHighPerformer = 5
	caseMidLowPerformer  = 6
	caseWideRange        = 7
)

var sports = []string{"football", "basketball", "volleyball", "soccer", "track", "other"}

var positions = []string{"QB", "WR", "PG", "SG", "MB", "OH", "CM", "ST", "sprinter", "utility"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomIndex returns a random int in [0, n).
func randomIndex(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// randomSport picks a sport for a synthetic submission.
func randomSport() string {
	return sports[randomIndex(len(sports))]
}

// randomPosition picks a position label.
func randomPosition() string {
	return positions[randomIndex(len(positions))]
}

// generateSubmission creates a synthetic film submission payload.
func generateSubmission(index int, sport string) Submission {
	return Submission{
		Title:      "Highlight reel " + strconv.Itoa(index) + " (" + sport + ")",
		VideoRef:   "s3://film/" + uuid.New().String() + ".mp4",
		PlayerName: "Player " + strconv.Itoa(index),
	}
}

// generateSliderValue produces a trait value with a varied performer
// distribution so the resulting grades cover the whole scale.
func generateSliderValue(min, max float64) float64 {
	span := max - min
	profile, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))
	var lo, width float64
	switch profile.Int64() {
	case caseAveragePerformer:
		lo, width = 0.3, 0.4
	case caseHighPerformer:
		lo, width = 0.7, 0.2
	case caseLowPerformer:
		lo, width = 0.0, 0.3
	case caseElitePerformer:
		lo, width = 0.9, 0.1
	case caseVeryLowPerformer:
		lo, width = 0.0, 0.1
	case caseMidHighPerformer:
		lo, width = 0.6, 0.2
	case caseMidLowPerformer:
		lo, width = 0.2, 0.2
	case caseWideRange:
		lo, width = 0.0, 1.0
	default:
		lo, width = 0.0, 1.0
	}
	return min + span*(lo+getRandomFloat()*width)
}

// generateRubric fills every trait of the active form with a value.
func generateRubric(form *Form) *RubricResponse {
	resp := &RubricResponse{}
	for _, cat := range form.Categories {
		rc := ResponseCategory{Key: cat.Key}
		for _, trait := range cat.Traits {
			rt := ResponseTrait{Key: trait.Key}
			switch {
			case trait.Kind == "slider" && trait.Slider != nil:
				v := generateSliderValue(trait.Slider.Min, trait.Slider.Max)
				rt.ValueNumber = &v
			case trait.Kind == "select" && trait.Select != nil && len(trait.Select.Options) > 0:
				opt := trait.Select.Options[randomIndex(len(trait.Select.Options))].Value
				rt.ValueOption = &opt
			default:
				continue
			}
			rc.Traits = append(rc.Traits, rt)
		}
		resp.Categories = append(resp.Categories, rc)
	}
	return resp
}

// generateEvaluation builds an evaluation for a created submission. Every
// tenth evaluation carries an explicit grade instead of a rubric.
func generateEvaluation(index int, sub createdSubmission, form *Form) Evaluation {
	eval := Evaluation{
		FilmSubmissionID: sub.ID,
		Sport:            sub.Sport,
		Position:         randomPosition(),
		Strengths:        "Strong tape awareness and consistent effort",
		Improvements:     "Needs sharper decision making under pressure",
		Notes:            "Generated by filmgen run " + strconv.Itoa(index),
	}
	if index%10 == 9 {
		grade := 1 + randomIndex(10)
		eval.OverallGrade = &grade
		return eval
	}
	eval.Rubric = generateRubric(form)
	return eval
}
