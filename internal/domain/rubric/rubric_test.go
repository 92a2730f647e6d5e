package rubric_test

import (
	"testing"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultDefinition(t *testing.T) {
	Convey("Given the built-in templates", t, func() {
		allSports := []model.Sport{
			model.SportFootball,
			model.SportBasketball,
			model.SportVolleyball,
			model.SportSoccer,
			model.SportTrack,
			model.SportOther,
		}

		for _, sport := range allSports {
			sport := sport
			Convey("When synthesizing the default for "+string(sport), func() {
				def := rubric.DefaultDefinition(sport)

				Convey("Then it is a well-formed system default", func() {
					So(def.Sport, ShouldEqual, sport)
					So(def.Version, ShouldEqual, rubric.TemplateVersion)
					So(def.Title, ShouldEqual, rubric.DefaultTitle(sport))
					So(def.IsSystemDefault(), ShouldBeTrue)
					So(len(def.Categories), ShouldEqual, 5)
				})

				Convey("And every category carries a projection trait", func() {
					for _, cat := range def.Categories {
						So(cat.Weight, ShouldBeGreaterThan, 0)
						So(len(cat.Traits), ShouldBeGreaterThanOrEqualTo, 2)

						var projections int
						for _, trait := range cat.Traits {
							So(trait.Key, ShouldNotBeEmpty)
							switch trait.Kind {
							case rubric.KindSlider:
								So(trait.Slider, ShouldNotBeNil)
								So(trait.Select, ShouldBeNil)
							case rubric.KindSelect:
								So(trait.Select, ShouldNotBeNil)
								So(trait.Slider, ShouldBeNil)
							}
							if trait.IsProjection() {
								projections++
							}
						}
						So(projections, ShouldEqual, 1)
					}
				})

				Convey("And category weights sum to 100", func() {
					var sum float64
					for _, cat := range def.Categories {
						sum += cat.Weight
					}
					So(sum, ShouldAlmostEqual, 100, 1e-9)
				})
			})
		}

		Convey("When synthesizing for an unknown sport", func() {
			def := rubric.DefaultDefinition(model.Sport("underwater hockey"))

			Convey("Then it falls back to the generic template", func() {
				So(def.Sport, ShouldEqual, model.SportOther)
				So(def.Title, ShouldEqual, rubric.DefaultTitle(model.SportOther))
			})
		})
	})
}

func TestIsSystemDefault(t *testing.T) {
	Convey("Given definitions with different provenance", t, func() {
		Convey("When the definition has an author", func() {
			def := rubric.DefaultDefinition(model.SportSoccer)
			def.CreatedBy = "coach-7"

			Convey("Then it is not a system default", func() {
				So(def.IsSystemDefault(), ShouldBeFalse)
			})
		})

		Convey("When the title was customized", func() {
			def := rubric.DefaultDefinition(model.SportSoccer)
			def.Title = "Regional scouting form"

			Convey("Then it is not a system default", func() {
				So(def.IsSystemDefault(), ShouldBeFalse)
			})
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Given a definition with a legacy projection trait", t, func() {
		def := &rubric.Definition{
			Sport: model.SportBasketball,
			Categories: []rubric.Category{
				{Key: "shooting", Weight: 25, Traits: []rubric.Trait{
					{Key: "ceiling_projection", Kind: rubric.KindSelect, Required: true,
						Select: &rubric.Select{Options: []rubric.Option{{Value: "high", Score: 9}}}},
					{Key: "catch_and_shoot", Kind: rubric.KindSlider,
						Slider: &rubric.Slider{Min: 1, Max: 10, Step: 1}},
				}},
			},
		}

		Convey("When normalized", func() {
			def.Normalize()

			Convey("Then the projection trait becomes an optional slider", func() {
				trait := def.FindCategory("shooting").FindTrait("ceiling_projection")
				So(trait, ShouldNotBeNil)
				So(trait.Kind, ShouldEqual, rubric.KindSlider)
				So(trait.Required, ShouldBeFalse)
				So(trait.Select, ShouldBeNil)
				So(trait.Slider, ShouldNotBeNil)
				So(trait.Slider.Min, ShouldEqual, 1)
				So(trait.Slider.Max, ShouldEqual, 10)
			})

			Convey("And ordinary traits are untouched", func() {
				trait := def.FindCategory("shooting").FindTrait("catch_and_shoot")
				So(trait.Kind, ShouldEqual, rubric.KindSlider)
			})
		})
	})
}

func TestFindHelpers(t *testing.T) {
	Convey("Given a definition", t, func() {
		def := rubric.DefaultDefinition(model.SportFootball)

		Convey("When looking up a missing category", func() {
			So(def.FindCategory("nope"), ShouldBeNil)
		})

		Convey("When looking up a missing trait", func() {
			So(def.Categories[0].FindTrait("nope"), ShouldBeNil)
		})

		Convey("When looking up an existing category", func() {
			cat := def.FindCategory(def.Categories[0].Key)
			So(cat, ShouldNotBeNil)
			So(cat.Key, ShouldEqual, def.Categories[0].Key)
		})
	})
}
