package model_test

import (
	"encoding/json"
	"testing"
	"time"

	model "github.com/okian/pacer/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestClockSample(t *testing.T) {
	convey.Convey("Given a clock sample", t, func() {
		s := model.ClockSample{UserSeconds: 58, OppSeconds: 60, SampledAt: time.Now()}

		convey.Convey("Then delta is user minus opponent", func() {
			convey.So(s.Delta(), convey.ShouldEqual, -2.0)
		})

		convey.Convey("When the user is ahead", func() {
			s.UserSeconds = 63.5
			convey.So(s.Delta(), convey.ShouldEqual, 3.5)
		})
	})
}

func TestEnumNames(t *testing.T) {
	convey.Convey("Given the domain enums", t, func() {
		convey.Convey("Then positions print by name", func() {
			convey.So(model.PositionDominating.String(), convey.ShouldEqual, "DOMINATING")
			convey.So(model.PositionEven.String(), convey.ShouldEqual, "EVEN")
			convey.So(model.PositionLosing.String(), convey.ShouldEqual, "LOSING")
			convey.So(model.Position(42).String(), convey.ShouldEqual, "Position(42)")
		})

		convey.Convey("And urgencies print by name", func() {
			convey.So(model.UrgencyRelaxed.String(), convey.ShouldEqual, "RELAXED")
			convey.So(model.UrgencyPremove.String(), convey.ShouldEqual, "PREMOVE")
		})

		convey.Convey("And ratings are listed in ascending order", func() {
			rs := model.Ratings()
			convey.So(len(rs), convey.ShouldEqual, 6)
			convey.So(rs[0], convey.ShouldEqual, model.RatingPremove)
			convey.So(rs[5], convey.ShouldEqual, model.RatingCritical)
			convey.So(model.RatingCostly.String(), convey.ShouldEqual, "COSTLY")
		})

		convey.Convey("And momentum defaults to neutral", func() {
			var m model.Momentum
			convey.So(m, convey.ShouldEqual, model.MomentumNeutral)
			convey.So(model.MomentumGaining.String(), convey.ShouldEqual, "GAINING")
			convey.So(model.MomentumLosing.String(), convey.ShouldEqual, "LOSING")
		})
	})
}

func TestFrameJSON(t *testing.T) {
	convey.Convey("Given a frame with a completed move", t, func() {
		mv := &model.MoveRecord{Number: 1, TimeSpent: 2.5, Budget: 0.5, Ratio: 5, Rating: model.RatingCritical}
		f := model.Frame{Position: model.PositionBehind, Urgency: model.UrgencyRelaxed, Momentum: model.MomentumNeutral, Move: mv}

		convey.Convey("When encoding to JSON", func() {
			b, err := json.Marshal(f)

			convey.Convey("Then enums are encoded by name", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(b), convey.ShouldContainSubstring, `"Position":"BEHIND"`)
				convey.So(string(b), convey.ShouldContainSubstring, `"Urgency":"RELAXED"`)
				convey.So(string(b), convey.ShouldContainSubstring, `"Rating":"CRITICAL"`)
				convey.So(string(b), convey.ShouldContainSubstring, `"Momentum":"NEUTRAL"`)
			})
		})
	})
}
