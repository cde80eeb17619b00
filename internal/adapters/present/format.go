// Package present renders frames for a terminal. It owns every presentation
// constant and never feeds anything back into the session.
package present

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/pacer/internal/domain/model"
)

// FormatDelta renders a signed lead with one decimal, e.g. "+1.2" or "-0.4".
func FormatDelta(seconds float64) string {
	sign := ""
	if seconds >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.1f", sign, seconds)
}

// FormatBudget renders sub-second budgets in milliseconds, others in seconds.
func FormatBudget(seconds float64) string {
	if seconds < 1 {
		return fmt.Sprintf("%.0fms", seconds*1000)
	}
	return fmt.Sprintf("%.1fs", seconds)
}

// FeedbackText is the short verdict shown after a move: "instant" for
// premoves, the share of budget used for moves within budget, and the
// overspend otherwise.
func FeedbackText(m model.MoveRecord) string {
	switch {
	case m.Rating == model.RatingPremove:
		return "instant"
	case m.Ratio <= 1:
		return fmt.Sprintf("%.1fs (%d%%)", m.TimeSpent, int(math.Round(m.Ratio*100)))
	default:
		return fmt.Sprintf("%.1fs (+%.1fs)", m.TimeSpent, m.TimeSpent-m.Budget)
	}
}

// UrgencyBar draws remaining time as a share of the relaxed threshold.
func UrgencyBar(seconds, relaxed float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := 0.0
	if relaxed > 0 && seconds > 0 {
		frac = math.Min(1, seconds/relaxed)
	}
	filled := int(math.Round(frac * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
