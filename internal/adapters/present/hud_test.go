package present_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/pacer/internal/adapters/present"
	"github.com/okian/pacer/internal/domain/model"
	"github.com/okian/pacer/internal/domain/types"
)

func behindFrame() model.Frame {
	return model.Frame{
		SessionID:   "abcdef123456",
		Tick:        1,
		UserText:    "0:58",
		OppText:     "1:00",
		UserSeconds: 58,
		OppSeconds:  60,
		Delta:       -2,
		Position:    model.PositionBehind,
		Urgency:     model.UrgencyRelaxed,
		Budget:      1.4,
	}
}

func TestHUD_Line(t *testing.T) {
	Convey("Given a HUD without colours", t, func() {
		h := present.NewHUD(&bytes.Buffer{}, present.WithBarWidth(4))

		Convey("When formatting a regular frame", func() {
			line := h.Line(behindFrame())

			Convey("Then both clocks, the lead and the budget are shown", func() {
				So(line, ShouldContainSubstring, "OPP 1:00")
				So(line, ShouldContainSubstring, "-2.0 ●")
				So(line, ShouldContainSubstring, "YOU 0:58 ████")
				So(line, ShouldContainSubstring, "budget 1.4s")
				So(line, ShouldEndWith, "BEHIND/RELAXED")
				So(line, ShouldNotContainSubstring, "\x1b[")
			})
		})

		Convey("When the frame carries a completed move", func() {
			f := behindFrame()
			f.Momentum = model.MomentumLosing
			f.Move = &model.MoveRecord{Number: 3, TimeSpent: 2.5, Budget: 0.5, Ratio: 5, Rating: model.RatingCritical}
			line := h.Line(f)

			Convey("Then the verdict follows the budget", func() {
				So(line, ShouldContainSubstring, "⛔ 2.5s (+2.0s)")
				So(line, ShouldContainSubstring, "▼")
			})
		})

		Convey("When the clocks are missing", func() {
			f := model.Frame{SessionID: "abcdef123456", OppText: "20", Skipped: true}

			Convey("Then a waiting line is shown", func() {
				So(h.Line(f), ShouldEqual, "[abcdef12] waiting for clocks (you ?, opp 20)")
			})
		})

		Convey("When board tint is enabled", func() {
			tinted := present.NewHUD(&bytes.Buffer{}, present.WithBoardTint(true))
			f := behindFrame()
			f.Delta = 0

			Convey("Then the square colours are appended", func() {
				So(tinted.Line(f), ShouldEndWith, "board #ebecd0/#739552")
			})
		})
	})
}

func TestHUD_Render(t *testing.T) {
	Convey("Given a logging HUD", t, func() {
		var buf bytes.Buffer
		h := present.NewHUD(&buf)
		lines := func() int { return strings.Count(buf.String(), "\n") }

		Convey("When the same frame repeats", func() {
			So(h.Render(behindFrame()), ShouldBeNil)
			So(h.Render(behindFrame()), ShouldBeNil)

			Convey("Then it is written once", func() {
				So(lines(), ShouldEqual, 1)
			})
		})

		Convey("When the position changes", func() {
			So(h.Render(behindFrame()), ShouldBeNil)
			f := behindFrame()
			f.Position = model.PositionEven
			So(h.Render(f), ShouldBeNil)

			Convey("Then a new line is written", func() {
				So(lines(), ShouldEqual, 2)
			})
		})

		Convey("When a gap in clock data lasts several ticks", func() {
			So(h.Render(behindFrame()), ShouldBeNil)
			gap := model.Frame{SessionID: "abcdef123456", Skipped: true}
			for range 5 {
				So(h.Render(gap), ShouldBeNil)
			}
			So(h.Render(behindFrame()), ShouldBeNil)

			Convey("Then only its start and end are written", func() {
				So(lines(), ShouldEqual, 3)
			})
		})
	})

	Convey("Given a live HUD", t, func() {
		var buf bytes.Buffer
		h := present.NewHUD(&buf, present.WithLive(true))
		frames := make(chan model.Frame, 2)
		frames <- behindFrame()
		frames <- behindFrame()
		close(frames)

		Convey("When frames are streamed", func() {
			So(h.Run(context.Background(), frames), ShouldBeNil)

			Convey("Then every frame redraws the line and the run ends with a newline", func() {
				out := buf.String()
				So(strings.Count(out, "\r\x1b[K"), ShouldEqual, 2)
				So(out, ShouldEndWith, "\n")
				So(strings.Count(out, "\n"), ShouldEqual, 1)
			})
		})
	})
}

func TestTables(t *testing.T) {
	Convey("Given a budget curve", t, func() {
		rows := []types.BudgetRow{
			{Remaining: 60, EstimatedMoves: 35, Budget: 1.457},
			{Remaining: 5, Budget: 0.5, Scramble: true},
		}
		var buf bytes.Buffer

		Convey("When rendered", func() {
			So(present.BudgetTable(&buf, rows, false), ShouldBeNil)

			Convey("Then each row shows its regime", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "60s")
				So(out, ShouldContainSubstring, "1.5s")
				So(out, ShouldContainSubstring, "paced")
				So(out, ShouldContainSubstring, "500ms")
				So(out, ShouldContainSubstring, "scramble")
			})
		})
	})

	Convey("Given session stats", t, func() {
		st := types.SessionStats{
			SessionID: "abc",
			Moves:     4,
			Ticks:     80,
			Ratings:   map[string]int{"GOOD": 3, "CRITICAL": 1},
			Momentum:  model.MomentumNeutral,
			MeanRatio: 1.1,
		}
		var buf bytes.Buffer

		Convey("When rendered", func() {
			So(present.SummaryTable(&buf, st, false), ShouldBeNil)

			Convey("Then counts, shares and the footer are shown", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "GOOD")
				So(out, ShouldContainSubstring, "75%")
				So(out, ShouldContainSubstring, "25%")
				So(out, ShouldContainSubstring, "total")
				So(out, ShouldContainSubstring, "session abc: 4 moves, momentum NEUTRAL, mean ratio 1.10, 80 ticks (0 skipped)")
			})
		})
	})
}
