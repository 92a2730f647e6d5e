// Package scoring computes a weighted grade from a rubric definition and
// an evaluator's responses. Pure, deterministic, no I/O.
package scoring

import (
	"math"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
)

// Grade bounds and the neutral fallback used when no category
// contributes a scored trait.
const (
	MinGrade     = 1.0
	MaxGrade     = 10.0
	NeutralGrade = 7.0
)

// Projection bucket thresholds on the raw (unrounded) grade.
const (
	eliteThreshold = 9.0
	highThreshold  = 7.5
	solidThreshold = 6.0
)

// Result is the engine's output for one response.
type Result struct {
	// Raw is the weighted average clamped to [1, 10].
	Raw float64
	// Grade is Raw rounded to the nearest integer, clamped to [1, 10].
	Grade int
	// Projection is the advisory bucket derived from Raw.
	Projection model.Projection
}

// Score grades a rubric response against a definition.
//
// Each category's score is the arithmetic mean of its scored traits;
// projection traits and unanswered traits contribute nothing. Categories
// with no scored traits are excluded from weighting entirely, and the
// remaining weights are renormalized. If nothing contributed, the raw
// grade falls back to NeutralGrade.
func Score(def *rubric.Definition, resp *model.RubricResponse) Result {
	var weightedSum, weightTotal float64

	for i := range def.Categories {
		cat := &def.Categories[i]
		rc := findResponseCategory(resp, cat.Key)
		if rc == nil {
			continue
		}

		avg, ok := categoryAverage(cat, rc)
		if !ok {
			continue
		}
		weightedSum += avg * cat.Weight
		weightTotal += cat.Weight
	}

	raw := NeutralGrade
	if weightTotal > 0 {
		raw = weightedSum / weightTotal
	}
	raw = clamp(raw)

	return Result{
		Raw:        raw,
		Grade:      RoundGrade(raw),
		Projection: ProjectionFor(raw),
	}
}

// categoryAverage returns the mean of the category's scored traits and
// whether any trait scored at all.
func categoryAverage(cat *rubric.Category, rc *model.ResponseCategory) (float64, bool) {
	var sum float64
	var n int

	for i := range cat.Traits {
		trait := &cat.Traits[i]
		if trait.IsProjection() {
			continue
		}
		rt := findResponseTrait(rc, trait.Key)
		if rt == nil {
			continue
		}
		score, ok := traitScore(trait, rt)
		if !ok {
			continue
		}
		sum += score
		n++
	}

	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// traitScore resolves the score of one answered trait. Scored traits are
// optional: unmatched select options and non-finite slider values simply
// do not contribute.
func traitScore(trait *rubric.Trait, rt *model.ResponseTrait) (float64, bool) {
	switch trait.Kind {
	case rubric.KindSelect:
		if rt.ValueOption == nil || trait.Select == nil {
			return 0, false
		}
		for _, opt := range trait.Select.Options {
			if opt.Value == *rt.ValueOption {
				return opt.Score, true
			}
		}
		return 0, false
	case rubric.KindSlider:
		if rt.ValueNumber == nil {
			return 0, false
		}
		v := *rt.ValueNumber
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

// RoundGrade converts a raw grade to the integer grade: round then clamp.
func RoundGrade(raw float64) int {
	g := int(math.Round(clamp(raw)))
	if g < int(MinGrade) {
		g = int(MinGrade)
	}
	if g > int(MaxGrade) {
		g = int(MaxGrade)
	}
	return g
}

// ProjectionFor maps a raw grade onto the advisory projection bucket.
// The bucket is derived from the raw grade, not the rounded one.
func ProjectionFor(raw float64) model.Projection {
	switch {
	case raw >= eliteThreshold:
		return model.ProjectionEliteUpside
	case raw >= highThreshold:
		return model.ProjectionHighUpside
	case raw >= solidThreshold:
		return model.ProjectionSolid
	default:
		return model.ProjectionDevelopmental
	}
}

func clamp(v float64) float64 {
	return math.Max(MinGrade, math.Min(MaxGrade, v))
}

func findResponseCategory(resp *model.RubricResponse, key string) *model.ResponseCategory {
	if resp == nil {
		return nil
	}
	for i := range resp.Categories {
		if resp.Categories[i].Key == key {
			return &resp.Categories[i]
		}
	}
	return nil
}

func findResponseTrait(rc *model.ResponseCategory, key string) *model.ResponseTrait {
	for i := range rc.Traits {
		if rc.Traits[i].Key == key {
			return &rc.Traits[i]
		}
	}
	return nil
}
