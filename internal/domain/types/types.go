// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/pacer/internal/domain/model"
)

// SessionStats is a point-in-time snapshot of a pacing session.
type SessionStats struct {
	SessionID    string            `json:"session_id"`
	StartedAt    time.Time         `json:"started_at"`
	Ticks        int64             `json:"ticks"`
	SkippedTicks int64             `json:"skipped_ticks"`
	Resets       int               `json:"resets"`
	Moves        int               `json:"moves"`
	TurnState    string            `json:"turn_state"`
	Position     model.Position    `json:"position"`
	Urgency      model.Urgency     `json:"urgency"`
	Momentum     model.Momentum    `json:"momentum"`
	MeanRatio    float64           `json:"mean_ratio"`
	Budget       float64           `json:"budget"`
	Ratings      map[string]int    `json:"ratings"`
	LastMove     *model.MoveRecord `json:"last_move,omitempty"`
}

// BudgetRow is one line of the budget curve: the allowance at a given clock.
type BudgetRow struct {
	Remaining      float64 `json:"remaining"`
	EstimatedMoves float64 `json:"estimated_moves"`
	Budget         float64 `json:"budget"`
	Scramble       bool    `json:"scramble"`
}
