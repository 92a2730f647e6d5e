package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/reelscore/reelscore/internal/app"
	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/rubric"
	. "github.com/smartystreets/goconvey/convey"
)

func TestActiveForm(t *testing.T) {
	Convey("Given a started service with no forms", t, func() {
		ctx := context.Background()
		svc, store, _ := newTestService(t)

		Convey("When requesting the active form for a sport", func() {
			def, err := svc.ActiveForm(ctx, "basketball")

			Convey("Then the system default is created and activated", func() {
				So(err, ShouldBeNil)
				So(def.ID, ShouldNotBeEmpty)
				So(def.Sport, ShouldEqual, model.SportBasketball)
				So(def.Version, ShouldEqual, rubric.TemplateVersion)
				So(def.IsSystemDefault(), ShouldBeTrue)
				So(len(def.Categories), ShouldEqual, 5)
			})

			Convey("And a second request returns the same definition", func() {
				So(err, ShouldBeNil)
				again, err := svc.ActiveForm(ctx, "basketball")
				So(err, ShouldBeNil)
				So(again.ID, ShouldEqual, def.ID)
			})

			Convey("And projection traits come back normalized", func() {
				So(err, ShouldBeNil)
				for _, cat := range def.Categories {
					for _, trait := range cat.Traits {
						if trait.IsProjection() {
							So(trait.Kind, ShouldEqual, rubric.KindSlider)
							So(trait.Required, ShouldBeFalse)
						}
					}
				}
			})
		})

		Convey("When an unknown sport is requested", func() {
			def, err := svc.ActiveForm(ctx, "jai alai")

			Convey("Then the generic default is served", func() {
				So(err, ShouldBeNil)
				So(def.Sport, ShouldEqual, model.SportOther)
			})
		})

		Convey("When a stale system default is already active", func() {
			stale := rubric.DefaultDefinition(model.SportSoccer)
			stale.Version = rubric.TemplateVersion - 1
			So(store.ActivateForm(ctx, stale), ShouldBeNil)

			def, err := svc.ActiveForm(ctx, "soccer")

			Convey("Then it is upgraded in place, keeping its identity", func() {
				So(err, ShouldBeNil)
				So(def.ID, ShouldEqual, stale.ID)
				So(def.Version, ShouldEqual, rubric.TemplateVersion)
				So(def.CreatedAt.Equal(stale.CreatedAt), ShouldBeTrue)
			})
		})

		Convey("When a stale custom form is active", func() {
			custom := rubric.DefaultDefinition(model.SportTrack)
			custom.Version = rubric.TemplateVersion - 2
			custom.Title = "District scouting form"
			custom.CreatedBy = "admin-1"
			So(store.ActivateForm(ctx, custom), ShouldBeNil)

			def, err := svc.ActiveForm(ctx, "track")

			Convey("Then it is served untouched", func() {
				So(err, ShouldBeNil)
				So(def.ID, ShouldEqual, custom.ID)
				So(def.Version, ShouldEqual, rubric.TemplateVersion-2)
				So(def.Title, ShouldEqual, "District scouting form")
			})
		})
	})
}

func TestActivateForm(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc, store, _ := newTestService(t)

		Convey("When activating a custom definition", func() {
			def := rubric.DefaultDefinition(model.SportVolleyball)
			def.Title = "Club tryout form"
			def.CreatedBy = "admin-1"
			err := svc.ActivateForm(ctx, def)

			Convey("Then it becomes the single active form for the sport", func() {
				So(err, ShouldBeNil)
				active, err := store.ActiveForm(ctx, model.SportVolleyball)
				So(err, ShouldBeNil)
				So(active.ID, ShouldEqual, def.ID)
				So(active.Title, ShouldEqual, "Club tryout form")
			})

			Convey("And activating a replacement deactivates it", func() {
				So(err, ShouldBeNil)
				replacement := rubric.DefaultDefinition(model.SportVolleyball)
				replacement.Title = "Season two form"
				replacement.CreatedBy = "admin-1"
				So(svc.ActivateForm(ctx, replacement), ShouldBeNil)

				active, err := store.ActiveForm(ctx, model.SportVolleyball)
				So(err, ShouldBeNil)
				So(active.ID, ShouldEqual, replacement.ID)
			})
		})

		Convey("When the definition has no categories", func() {
			err := svc.ActivateForm(ctx, &rubric.Definition{Sport: model.SportVolleyball, Title: "empty"})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, service.ErrInvalidForm), ShouldBeTrue)
			})
		})

		Convey("When the definition names an unknown sport", func() {
			def := rubric.DefaultDefinition(model.SportOther)
			def.Sport = model.Sport("handball")
			def.CreatedBy = "admin-1"
			err := svc.ActivateForm(ctx, def)

			Convey("Then the sport is normalized before activation", func() {
				So(err, ShouldBeNil)
				active, storeErr := store.ActiveForm(ctx, model.SportOther)
				So(storeErr, ShouldBeNil)
				So(active.ID, ShouldEqual, def.ID)
			})
		})
	})
}
