package model

import "fmt"

// Position buckets the signed time delta between the two players.
type Position int

// Positions ordered from best to worst for the user.
const (
	PositionDominating Position = iota
	PositionAhead
	PositionEven
	PositionBehind
	PositionLosing
)

var positionNames = [...]string{"DOMINATING", "AHEAD", "EVEN", "BEHIND", "LOSING"}

func (p Position) String() string {
	if p < 0 || int(p) >= len(positionNames) {
		return fmt.Sprintf("Position(%d)", int(p))
	}
	return positionNames[p]
}

// MarshalText encodes the position by name.
func (p Position) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Urgency buckets the user's absolute remaining time.
type Urgency int

// Urgency levels ordered from calm to panic.
const (
	UrgencyRelaxed Urgency = iota
	UrgencyAlert
	UrgencyHigh
	UrgencyCritical
	UrgencyPremove
)

var urgencyNames = [...]string{"RELAXED", "ALERT", "HIGH", "CRITICAL", "PREMOVE"}

func (u Urgency) String() string {
	if u < 0 || int(u) >= len(urgencyNames) {
		return fmt.Sprintf("Urgency(%d)", int(u))
	}
	return urgencyNames[u]
}

// MarshalText encodes the urgency by name.
func (u Urgency) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// Rating classifies how a move's time compared to its budget.
type Rating int

// Ratings ordered from fastest to slowest.
const (
	RatingPremove Rating = iota
	RatingExcellent
	RatingGood
	RatingSlow
	RatingCostly
	RatingCritical
)

var ratingNames = [...]string{"PREMOVE", "EXCELLENT", "GOOD", "SLOW", "COSTLY", "CRITICAL"}

func (r Rating) String() string {
	if r < 0 || int(r) >= len(ratingNames) {
		return fmt.Sprintf("Rating(%d)", int(r))
	}
	return ratingNames[r]
}

// MarshalText encodes the rating by name.
func (r Rating) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Ratings lists every rating in ascending order of slowness.
func Ratings() []Rating {
	return []Rating{RatingPremove, RatingExcellent, RatingGood, RatingSlow, RatingCostly, RatingCritical}
}

// Momentum is the trend of recent move ratios.
type Momentum int

// Momentum values. Neutral is the zero value so a fresh session reads neutral.
const (
	MomentumNeutral Momentum = iota
	MomentumGaining
	MomentumLosing
)

func (m Momentum) String() string {
	switch m {
	case MomentumNeutral:
		return "NEUTRAL"
	case MomentumGaining:
		return "GAINING"
	case MomentumLosing:
		return "LOSING"
	default:
		return fmt.Sprintf("Momentum(%d)", int(m))
	}
}

// MarshalText encodes the momentum by name.
func (m Momentum) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
