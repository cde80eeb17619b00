package present

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/okian/pacer/internal/domain/model"
)

const (
	defaultBarWidth = 10
	defaultRelaxed  = 25.0
	clearLine       = "\r\x1b[K"
)

// HUDOption applies a configuration option to the HUD.
type HUDOption func(*HUD)

// WithColor enables ANSI colours.
func WithColor(enabled bool) HUDOption {
	return func(h *HUD) { h.useColor = enabled }
}

// WithLive redraws a single status line in place instead of logging changes.
func WithLive(enabled bool) HUDOption {
	return func(h *HUD) { h.live = enabled }
}

// WithBarWidth sets the urgency bar width in cells.
func WithBarWidth(n int) HUDOption {
	return func(h *HUD) {
		if n > 0 {
			h.barWidth = n
		}
	}
}

// WithRelaxedThreshold sets the clock value that fills the urgency bar.
func WithRelaxedThreshold(seconds float64) HUDOption {
	return func(h *HUD) {
		if seconds > 0 {
			h.relaxed = seconds
		}
	}
}

// WithBoardTint appends the suggested square colours to each line.
func WithBoardTint(enabled bool) HUDOption {
	return func(h *HUD) { h.tint = enabled }
}

// HUD renders frames as one status line each.
//
// In live mode the line is redrawn in place and a completed move leaves its
// line in the scrollback. Otherwise a line is written only when something
// worth reading happens: a move, a new session, a change of position or
// urgency, or the start of a gap in the clock data.
type HUD struct {
	w        io.Writer
	useColor bool
	live     bool
	barWidth int
	relaxed  float64
	tint     bool

	prev    model.Frame
	hasPrev bool
}

// NewHUD creates a HUD writing to w.
func NewHUD(w io.Writer, opts ...HUDOption) *HUD {
	h := &HUD{
		w:        w,
		barWidth: defaultBarWidth,
		relaxed:  defaultRelaxed,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run renders frames until the channel closes or ctx is cancelled.
func (h *HUD) Run(ctx context.Context, frames <-chan model.Frame) error {
	defer h.finish()
	for {
		select {
		case <-ctx.Done():
			return nil
		case f, ok := <-frames:
			if !ok {
				return nil
			}
			if err := h.Render(f); err != nil {
				return err
			}
		}
	}
}

// Render writes the frame if the current mode calls for it.
func (h *HUD) Render(f model.Frame) error { //nolint:gocritic // frames travel by value
	defer func() {
		h.prev = f
		h.hasPrev = true
	}()

	if h.live {
		out := clearLine + h.Line(f)
		if f.Move != nil {
			out += "\n"
		}
		_, err := io.WriteString(h.w, out)
		return err
	}

	if !h.noteworthy(f) {
		return nil
	}
	_, err := fmt.Fprintln(h.w, h.Line(f))
	return err
}

func (h *HUD) noteworthy(f model.Frame) bool { //nolint:gocritic // frames travel by value
	if !h.hasPrev || f.Move != nil || f.SessionID != h.prev.SessionID {
		return true
	}
	if f.Skipped {
		return !h.prev.Skipped
	}
	return h.prev.Skipped || f.Position != h.prev.Position || f.Urgency != h.prev.Urgency
}

func (h *HUD) finish() {
	if h.live && h.hasPrev {
		_, _ = io.WriteString(h.w, "\n")
	}
}

// Line formats one frame.
func (h *HUD) Line(f model.Frame) string { //nolint:gocritic // frames travel by value
	if f.Skipped {
		return h.paint(neutralColor, fmt.Sprintf("%s waiting for clocks (you %s, opp %s)",
			shortID(f.SessionID), orMissing(f.UserText), orMissing(f.OppText)))
	}

	var b strings.Builder
	glyph, glyphColor := momentumGlyph(f.Momentum, f.Position)

	fmt.Fprintf(&b, "%s %s  ", h.paint(headerColor, "OPP"), clockText(f.OppText, f.OppSeconds))
	fmt.Fprintf(&b, "%s %s  ", h.paint(positionColor(f.Position, color.Bold), FormatDelta(f.Delta)), h.paint(glyphColor, glyph))
	fmt.Fprintf(&b, "%s %s %s  ",
		h.paint(headerColor, "YOU"),
		h.paint(clockColor(f.Position, f.Urgency), clockText(f.UserText, f.UserSeconds)),
		h.paint(positionColor(f.Position), UrgencyBar(f.UserSeconds, h.relaxed, h.barWidth)),
	)
	fmt.Fprintf(&b, "budget %s", FormatBudget(f.Budget))

	if mv := feedbackMove(f); mv != nil {
		st := StyleFor(mv.Rating)
		b.WriteString("  ")
		b.WriteString(h.paint(feedbackColor(*mv, f.Position), st.Icon+" "+FeedbackText(*mv)))
	}

	fmt.Fprintf(&b, "  %s", h.paint(neutralColor, f.Position.String()+"/"+f.Urgency.String()))

	if h.tint {
		t := BoardTint(f.Delta)
		fmt.Fprintf(&b, "  board %s/%s", t.Light.Hex(), t.Dark.Hex())
	}
	return b.String()
}

func (h *HUD) paint(c *color.Color, s string) string {
	if !h.useColor {
		return s
	}
	return c.Sprint(s)
}

// feedbackMove prefers the move completed this tick over older feedback.
func feedbackMove(f model.Frame) *model.MoveRecord { //nolint:gocritic // frames travel by value
	if f.Move != nil {
		return f.Move
	}
	return f.LastMove
}

func clockText(text string, seconds float64) string {
	if text != "" {
		return text
	}
	return fmt.Sprintf("%.1f", seconds)
}

func orMissing(text string) string {
	if text == "" {
		return "?"
	}
	return text
}

func shortID(id string) string {
	if len(id) > 8 {
		return "[" + id[:8] + "]"
	}
	return "[" + id + "]"
}
