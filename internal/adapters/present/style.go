package present

import (
	"github.com/fatih/color"

	"github.com/okian/pacer/internal/domain/model"
)

// RatingStyle is how a move rating is announced.
type RatingStyle struct {
	Icon      string
	Intensity float64 // 0..1, how loudly the rating is shown
}

var ratingStyles = map[model.Rating]RatingStyle{
	model.RatingPremove:   {Icon: "⚡", Intensity: 1.0},
	model.RatingExcellent: {Icon: "✦", Intensity: 0.8},
	model.RatingGood:      {Icon: "✓", Intensity: 0.4},
	model.RatingSlow:      {Icon: "⏱", Intensity: 0.6},
	model.RatingCostly:    {Icon: "⚠", Intensity: 0.8},
	model.RatingCritical:  {Icon: "⛔", Intensity: 1.0},
}

// StyleFor returns the icon and intensity of a rating.
func StyleFor(r model.Rating) RatingStyle {
	if s, ok := ratingStyles[r]; ok {
		return s
	}
	return RatingStyle{Icon: "?", Intensity: 1.0}
}

// Base colour per position, for clocks, delta and the urgency bar.
var positionAttrs = map[model.Position][]color.Attribute{
	model.PositionDominating: {color.FgHiGreen},
	model.PositionAhead:      {color.FgGreen},
	model.PositionEven:       {color.FgWhite},
	model.PositionBehind:     {color.FgYellow},
	model.PositionLosing:     {color.FgRed},
}

// Extra emphasis as time runs out.
var urgencyAttrs = map[model.Urgency][]color.Attribute{
	model.UrgencyRelaxed:  {color.Faint},
	model.UrgencyAlert:    nil,
	model.UrgencyHigh:     {color.Bold},
	model.UrgencyCritical: {color.Bold, color.BlinkSlow},
	model.UrgencyPremove:  {color.Bold, color.BlinkRapid},
}

var (
	neutralColor = color.New(color.FgHiBlack)
	cautionColor = color.New(color.FgHiYellow)
	warningColor = color.New(color.FgYellow, color.Bold)
	headerColor  = color.New(color.FgCyan)
)

// positionColor builds the position colour plus any extra attributes.
func positionColor(p model.Position, extra ...color.Attribute) *color.Color {
	base, ok := positionAttrs[p]
	if !ok {
		base = []color.Attribute{color.FgWhite}
	}
	attrs := make([]color.Attribute, 0, len(base)+len(extra))
	attrs = append(attrs, base...)
	attrs = append(attrs, extra...)
	return color.New(attrs...)
}

// clockColor combines the position colour with urgency emphasis.
func clockColor(p model.Position, u model.Urgency) *color.Color {
	return positionColor(p, urgencyAttrs[u]...)
}

// momentumGlyph picks the arrow and its colour. A losing trend while not
// ahead is flagged in warning colour.
func momentumGlyph(m model.Momentum, p model.Position) (string, *color.Color) {
	switch m {
	case model.MomentumGaining:
		return "▲", positionColor(p, color.Bold)
	case model.MomentumLosing:
		if p == model.PositionEven || p == model.PositionBehind || p == model.PositionLosing {
			return "▼", warningColor
		}
		return "▼", positionColor(p)
	default:
		return "●", neutralColor
	}
}

// feedbackColor shows good moves, and every move while behind, in the
// position colour; otherwise a pale caution colour.
func feedbackColor(m model.MoveRecord, p model.Position) *color.Color {
	if m.Ratio <= 1 || p == model.PositionBehind || p == model.PositionLosing {
		if StyleFor(m.Rating).Intensity >= 0.8 {
			return positionColor(p, color.Bold)
		}
		return positionColor(p)
	}
	return cautionColor
}
