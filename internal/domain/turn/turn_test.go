package turn_test

import (
	"testing"
	"time"

	"github.com/okian/pacer/internal/domain/budget"
	"github.com/okian/pacer/internal/domain/model"
	"github.com/okian/pacer/internal/domain/turn"
	. "github.com/smartystreets/goconvey/convey"
)

// recordingBudgeter remembers the remaining times it was asked about.
type recordingBudgeter struct {
	asked []float64
}

func (r *recordingBudgeter) Budget(remaining float64) float64 {
	r.asked = append(r.asked, remaining)
	return remaining / 10
}

func feed(m *turn.Machine, user []float64, opp float64) []turn.Completed {
	var out []turn.Completed
	base := time.Unix(0, 0)
	for i, u := range user {
		s := model.ClockSample{UserSeconds: u, OppSeconds: opp, SampledAt: base.Add(time.Duration(i) * 50 * time.Millisecond)}
		if c, ok := m.Advance(s); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestMachine_RoundTrip(t *testing.T) {
	Convey("Given a machine using the default budget calculator", t, func() {
		calc := budget.NewCalculator()
		m := turn.NewMachine(calc)

		Convey("When the user clock reads stable, drops, then stable again", func() {
			moves := feed(m, []float64{10.0, 10.0, 7.5, 7.5}, 42)

			Convey("Then exactly one move is produced", func() {
				So(len(moves), ShouldEqual, 1)
				mv := moves[0]
				So(mv.Number, ShouldEqual, 1)
				So(mv.TimeSpent, ShouldEqual, 2.5)
				So(mv.StartSeconds, ShouldEqual, 10.0)
				So(mv.EndSeconds, ShouldEqual, 7.5)
				So(mv.BudgetAtStart, ShouldEqual, calc.Budget(10.0))
				So(mv.At.Equal(time.Unix(0, 0).Add(150*time.Millisecond)), ShouldBeTrue)
			})

			Convey("And the machine is idle with one move counted", func() {
				So(m.State(), ShouldEqual, turn.StateIdle)
				So(m.MoveCount(), ShouldEqual, 1)
				_, ok := m.TurnStart()
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestMachine_Transitions(t *testing.T) {
	Convey("Given a machine with a recording budgeter", t, func() {
		b := &recordingBudgeter{}
		m := turn.NewMachine(b)

		Convey("When only one sample has arrived", func() {
			_, ok := m.Advance(model.ClockSample{UserSeconds: 30})
			Convey("Then no transition is possible", func() {
				So(ok, ShouldBeFalse)
				So(m.State(), ShouldEqual, turn.StateIdle)
			})
		})

		Convey("When the clock starts running", func() {
			feed(m, []float64{60, 60, 59.95, 59.9}, 60)

			Convey("Then the turn is active and starts at the previous reading", func() {
				So(m.State(), ShouldEqual, turn.StateUserTurnActive)
				So(m.State().String(), ShouldEqual, "USER_TURN_ACTIVE")
				start, ok := m.TurnStart()
				So(ok, ShouldBeTrue)
				So(start, ShouldEqual, 60.0)
			})

			Convey("And the budget is only computed when the turn ends, from the start value", func() {
				So(len(b.asked), ShouldEqual, 0)
				_, ok := m.Advance(model.ClockSample{UserSeconds: 59.9, OppSeconds: 60})
				So(ok, ShouldBeTrue)
				So(b.asked, ShouldResemble, []float64{60.0})
			})
		})

		Convey("When decreases are within epsilon", func() {
			moves := feed(m, []float64{20, 19.995, 19.99, 19.985, 19.985}, 20)
			Convey("Then the clock is not considered ticking", func() {
				So(len(moves), ShouldEqual, 0)
				So(m.State(), ShouldEqual, turn.StateIdle)
			})
		})

		Convey("When several turns are played", func() {
			user := []float64{
				30, 30, 29.5, 29, 29, 29, // move 1: 30 -> 29
				29, 28.8, 28.8, // move 2: 29 -> 28.8
				28.8, 28.8, 27, 26, 25.4, 25.4, // move 3: 28.8 -> 25.4
			}
			moves := feed(m, user, 15)

			Convey("Then each turn yields one move with its own spend", func() {
				So(len(moves), ShouldEqual, 3)
				So(moves[0].TimeSpent, ShouldAlmostEqual, 1.0, 1e-9)
				So(moves[1].TimeSpent, ShouldAlmostEqual, 0.2, 1e-9)
				So(moves[2].TimeSpent, ShouldAlmostEqual, 3.4, 1e-9)
				So(moves[2].Number, ShouldEqual, 3)
				So(m.MoveCount(), ShouldEqual, 3)
			})
		})

		Convey("When the user clock increases (increment added)", func() {
			moves := feed(m, []float64{10, 9, 9, 11, 11}, 10)
			Convey("Then the increment is not a turn", func() {
				So(len(moves), ShouldEqual, 1)
				So(moves[0].TimeSpent, ShouldEqual, 1.0)
			})
		})

		Convey("When the opponent's clock runs", func() {
			m.Advance(model.ClockSample{UserSeconds: 10, OppSeconds: 10})
			m.Advance(model.ClockSample{UserSeconds: 10, OppSeconds: 9.5})
			Convey("Then it is tracked but never produces a user move", func() {
				So(m.OpponentTicking(), ShouldBeTrue)
				So(m.State(), ShouldEqual, turn.StateIdle)
			})
		})

		Convey("When reset mid-turn", func() {
			feed(m, []float64{10, 9, 8}, 10)
			m.Reset()

			Convey("Then the next samples start from scratch", func() {
				So(m.State(), ShouldEqual, turn.StateIdle)
				So(m.MoveCount(), ShouldEqual, 0)
				_, ok := m.Advance(model.ClockSample{UserSeconds: 8})
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given a machine with a wider epsilon", t, func() {
		m := turn.NewMachine(budget.NewCalculator(), turn.WithEpsilon(0.2))

		Convey("Then small drops are ignored", func() {
			moves := feed(m, []float64{10, 9.9, 9.8, 9.8}, 10)
			So(len(moves), ShouldEqual, 0)
		})
	})
}
