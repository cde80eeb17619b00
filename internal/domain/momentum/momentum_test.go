package momentum_test

import (
	"testing"

	"github.com/okian/pacer/internal/domain/model"
	"github.com/okian/pacer/internal/domain/momentum"
	. "github.com/smartystreets/goconvey/convey"
)

func move(n int, ratio float64) model.MoveRecord {
	return model.MoveRecord{Number: n, Ratio: ratio}
}

func TestTracker(t *testing.T) {
	Convey("Given a tracker with default settings", t, func() {
		tr := momentum.NewTracker()

		Convey("When the window is empty", func() {
			Convey("Then momentum is neutral", func() {
				So(tr.Current(), ShouldEqual, model.MomentumNeutral)
				So(tr.Len(), ShouldEqual, 0)
				So(tr.MeanRatio(), ShouldEqual, 0)
			})
		})

		Convey("When a single move is recorded", func() {
			tr.Record(move(1, 0.01))
			Convey("Then momentum is still neutral", func() {
				So(tr.Current(), ShouldEqual, model.MomentumNeutral)
			})
		})

		Convey("When consistently fast moves are recorded", func() {
			tr.Record(move(1, 0.2))
			tr.Record(move(2, 0.4))
			Convey("Then momentum is gaining", func() {
				So(tr.Current(), ShouldEqual, model.MomentumGaining)
			})
		})

		Convey("When consistently slow moves are recorded", func() {
			tr.Record(move(1, 1.2))
			tr.Record(move(2, 2.0))
			Convey("Then momentum is losing", func() {
				So(tr.Current(), ShouldEqual, model.MomentumLosing)
			})
		})

		Convey("When the mean sits exactly on a threshold", func() {
			Convey("Then the thresholds are strict", func() {
				tr.Record(move(1, 0.5))
				tr.Record(move(2, 0.5))
				So(tr.Current(), ShouldEqual, model.MomentumNeutral)
				tr.Reset()
				tr.Record(move(1, 1.4))
				tr.Record(move(2, 1.4))
				So(tr.Current(), ShouldEqual, model.MomentumNeutral)
			})
		})

		Convey("When more moves than the window are recorded", func() {
			for i := 1; i <= 8; i++ {
				tr.Record(move(i, float64(i)))
			}
			Convey("Then only the newest five remain, oldest first", func() {
				So(tr.Len(), ShouldEqual, 5)
				recs := tr.Records()
				So(recs[0].Number, ShouldEqual, 4)
				So(recs[4].Number, ShouldEqual, 8)
				So(tr.MeanRatio(), ShouldEqual, 6.0)
			})

			Convey("And the returned records are a copy", func() {
				recs := tr.Records()
				recs[0].Ratio = -100
				So(tr.Records()[0].Ratio, ShouldEqual, 4.0)
			})
		})

		Convey("When reset", func() {
			tr.Record(move(1, 3))
			tr.Record(move(2, 3))
			tr.Reset()
			Convey("Then the window is empty and neutral", func() {
				So(tr.Len(), ShouldEqual, 0)
				So(tr.Current(), ShouldEqual, model.MomentumNeutral)
			})
		})

		Convey("When replaying N identical ratios", func() {
			Convey("Then momentum matches that ratio's classification", func() {
				cases := []struct {
					ratio float64
					want  model.Momentum
				}{
					{0.3, model.MomentumGaining},
					{1.0, model.MomentumNeutral},
					{2.0, model.MomentumLosing},
				}
				for _, c := range cases {
					tr.Reset()
					for i := 0; i < tr.Window(); i++ {
						tr.Record(move(i, c.ratio))
					}
					So(tr.Current(), ShouldEqual, c.want)
					tr.Record(move(99, c.ratio))
					So(tr.Current(), ShouldEqual, c.want)
				}
			})
		})
	})

	Convey("Given a tracker with custom options", t, func() {
		tr := momentum.NewTracker(momentum.WithWindow(2), momentum.WithThresholds(0.8, 1.1))

		Convey("Then the window and thresholds apply", func() {
			tr.Record(move(1, 5))
			tr.Record(move(2, 0.7))
			tr.Record(move(3, 0.7))
			So(tr.Len(), ShouldEqual, 2)
			So(tr.Current(), ShouldEqual, model.MomentumGaining)
		})

		Convey("And invalid options are ignored", func() {
			bad := momentum.NewTracker(momentum.WithWindow(0), momentum.WithThresholds(2, 1))
			So(bad.Window(), ShouldEqual, 5)
			bad.Record(move(1, 1.45))
			bad.Record(move(2, 1.45))
			So(bad.Current(), ShouldEqual, model.MomentumLosing)
		})
	})
}
