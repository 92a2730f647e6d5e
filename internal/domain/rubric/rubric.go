// Package rubric defines versioned, sport-scoped scoring templates:
// categories of weighted traits that the scoring engine grades against.
package rubric

import (
	"strings"
	"time"

	"github.com/reelscore/reelscore/internal/domain/model"
)

// TraitKind tags the trait union. Every trait is exactly one of these.
type TraitKind string

const (
	KindSlider TraitKind = "slider"
	KindSelect TraitKind = "select"
)

// Slider is a numeric trait scored directly by its response value.
type Slider struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Option is one fixed choice of a select trait.
type Option struct {
	Value string  `json:"value"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Select is a fixed-option trait; the chosen option's Score is the
// trait's score.
type Select struct {
	Options []Option `json:"options"`
}

// Trait is a single scored dimension within a category. Kind selects the
// active arm of the union; the other arm is nil.
type Trait struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     TraitKind `json:"kind"`
	Required bool      `json:"required"`
	Slider   *Slider   `json:"slider,omitempty"`
	Select   *Select   `json:"select,omitempty"`
}

// IsProjection reports whether the trait is advisory-only. Projection
// traits capture a qualitative outlook and are excluded from scoring.
func (t Trait) IsProjection() bool {
	return strings.Contains(t.Key, "projection")
}

// Category groups traits under a relative weight. Weights need not sum
// to anything in particular; the scoring engine renormalizes.
type Category struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
	Traits []Trait `json:"traits"`
}

// Definition is a versioned scoring template for one sport. At most one
// definition per sport is active at any time.
type Definition struct {
	ID         string      `json:"id"`
	Sport      model.Sport `json:"sport"`
	Version    int         `json:"version"`
	Active     bool        `json:"active"`
	Title      string      `json:"title"`
	Categories []Category  `json:"categories"`
	CreatedBy  string      `json:"created_by,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// IsSystemDefault reports whether the definition looks like one the
// system synthesized: no author and the generated default title.
// Known to be heuristic; see Normalize for the companion repair logic.
func (d *Definition) IsSystemDefault() bool {
	return d.CreatedBy == "" && d.Title == DefaultTitle(d.Sport)
}

// Normalize repairs definitions authored before projection traits were
// standardized: any projection-tagged trait becomes a non-required
// 1-10 slider with no fixed options. Applied on every read.
func (d *Definition) Normalize() {
	for ci := range d.Categories {
		for ti := range d.Categories[ci].Traits {
			t := &d.Categories[ci].Traits[ti]
			if !t.IsProjection() {
				continue
			}
			t.Kind = KindSlider
			t.Required = false
			t.Slider = &Slider{Min: 1, Max: 10, Step: 1}
			t.Select = nil
		}
	}
}

// FindCategory returns the category with the given key, or nil.
func (d *Definition) FindCategory(key string) *Category {
	for i := range d.Categories {
		if d.Categories[i].Key == key {
			return &d.Categories[i]
		}
	}
	return nil
}

// FindTrait returns the trait with the given key, or nil.
func (c *Category) FindTrait(key string) *Trait {
	for i := range c.Traits {
		if c.Traits[i].Key == key {
			return &c.Traits[i]
		}
	}
	return nil
}
