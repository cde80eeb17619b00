package classify_test

import (
	"math"
	"testing"

	"github.com/okian/pacer/internal/domain/classify"
	"github.com/okian/pacer/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassifier_Position(t *testing.T) {
	Convey("Given a classifier with default thresholds", t, func() {
		c := classify.New()

		Convey("When the delta sits exactly on a threshold", func() {
			Convey("Then the higher bucket wins", func() {
				So(c.Position(5), ShouldEqual, model.PositionDominating)
				So(c.Position(2), ShouldEqual, model.PositionAhead)
				So(c.Position(1), ShouldEqual, model.PositionEven)
				So(c.Position(-1), ShouldEqual, model.PositionEven)
				So(c.Position(-2.5), ShouldEqual, model.PositionBehind)
			})
		})

		Convey("When the delta is between thresholds", func() {
			So(c.Position(7.3), ShouldEqual, model.PositionDominating)
			So(c.Position(4.99), ShouldEqual, model.PositionAhead)
			So(c.Position(0), ShouldEqual, model.PositionEven)
			So(c.Position(-2), ShouldEqual, model.PositionBehind)
			So(c.Position(-2.51), ShouldEqual, model.PositionLosing)
			So(c.Position(-60), ShouldEqual, model.PositionLosing)
		})

		Convey("When the delta lies above the even band but below ahead", func() {
			Convey("Then ordered comparison lands in BEHIND", func() {
				So(c.Position(1.5), ShouldEqual, model.PositionBehind)
			})
		})

		Convey("When the delta is extreme or NaN", func() {
			So(c.Position(math.Inf(1)), ShouldEqual, model.PositionDominating)
			So(c.Position(math.Inf(-1)), ShouldEqual, model.PositionLosing)
			So(c.Position(math.NaN()), ShouldEqual, model.PositionLosing)
		})

		Convey("When sweeping deltas", func() {
			Convey("Then exactly one valid bucket is returned for each", func() {
				for d := -20.0; d <= 20.0; d += 0.25 {
					p := c.Position(d)
					So(p >= model.PositionDominating && p <= model.PositionLosing, ShouldBeTrue)
				}
			})
		})
	})

	Convey("Given custom position thresholds", t, func() {
		c := classify.New(classify.WithPositionThresholds(classify.PositionThresholds{
			Dominating: 10, Ahead: 4, Even: 2, Behind: -5,
		}))

		Convey("Then classification follows the configured values", func() {
			So(c.Position(9), ShouldEqual, model.PositionAhead)
			So(c.Position(10), ShouldEqual, model.PositionDominating)
			So(c.Position(-2), ShouldEqual, model.PositionEven)
			So(c.Position(-4), ShouldEqual, model.PositionBehind)
			So(c.Position(-6), ShouldEqual, model.PositionLosing)
		})
	})
}

func TestClassifier_Urgency(t *testing.T) {
	Convey("Given a classifier with default thresholds", t, func() {
		c := classify.New()

		Convey("When the remaining time is exactly a threshold", func() {
			Convey("Then strict comparison places it one bucket down", func() {
				So(c.Urgency(25), ShouldEqual, model.UrgencyAlert)
				So(c.Urgency(15), ShouldEqual, model.UrgencyHigh)
				So(c.Urgency(8), ShouldEqual, model.UrgencyCritical)
				So(c.Urgency(4), ShouldEqual, model.UrgencyPremove)
			})
		})

		Convey("When the remaining time is just above a threshold", func() {
			So(c.Urgency(25.01), ShouldEqual, model.UrgencyRelaxed)
			So(c.Urgency(15.01), ShouldEqual, model.UrgencyAlert)
			So(c.Urgency(8.01), ShouldEqual, model.UrgencyHigh)
			So(c.Urgency(4.01), ShouldEqual, model.UrgencyCritical)
		})

		Convey("When the remaining time is tiny, zero or NaN", func() {
			So(c.Urgency(1.9), ShouldEqual, model.UrgencyPremove)
			So(c.Urgency(0), ShouldEqual, model.UrgencyPremove)
			So(c.Urgency(math.NaN()), ShouldEqual, model.UrgencyPremove)
		})

		Convey("When the sentinel for missing clocks is used", func() {
			So(c.Urgency(9999), ShouldEqual, model.UrgencyRelaxed)
		})

		Convey("Then the relaxed threshold is exposed", func() {
			So(c.RelaxedThreshold(), ShouldEqual, 25.0)
		})
	})
}

func TestScenario_UserSlightlyBehind(t *testing.T) {
	Convey("Given the user at 58s and the opponent at 60s", t, func() {
		c := classify.New()
		s := model.ClockSample{UserSeconds: 58, OppSeconds: 60}

		Convey("Then the user is BEHIND and RELAXED", func() {
			So(c.Position(s.Delta()), ShouldEqual, model.PositionBehind)
			So(c.Urgency(s.UserSeconds), ShouldEqual, model.UrgencyRelaxed)
		})
	})
}
