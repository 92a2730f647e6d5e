package model_test

import (
	"testing"

	"github.com/reelscore/reelscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalizeSport(t *testing.T) {
	Convey("Given arbitrary sport strings", t, func() {
		Convey("When the value is a supported sport", func() {
			So(model.NormalizeSport("football"), ShouldEqual, model.SportFootball)
			So(model.NormalizeSport("basketball"), ShouldEqual, model.SportBasketball)
			So(model.NormalizeSport("volleyball"), ShouldEqual, model.SportVolleyball)
			So(model.NormalizeSport("soccer"), ShouldEqual, model.SportSoccer)
			So(model.NormalizeSport("track"), ShouldEqual, model.SportTrack)
		})

		Convey("When the value is unknown or empty", func() {
			So(model.NormalizeSport(""), ShouldEqual, model.SportOther)
			So(model.NormalizeSport("cricket"), ShouldEqual, model.SportOther)
			So(model.NormalizeSport("Football"), ShouldEqual, model.SportOther)
		})
	})
}
