package app

import (
	"github.com/okian/pacer/internal/config"
	"github.com/okian/pacer/internal/domain/boundary"
	"github.com/okian/pacer/internal/domain/budget"
	"github.com/okian/pacer/internal/domain/classify"
	"github.com/okian/pacer/internal/domain/momentum"
	"github.com/okian/pacer/internal/domain/rating"
)

// OptionsFromConfig builds the session options for a loaded configuration.
func OptionsFromConfig(cfg *config.Config) []Option {
	return []Option{
		WithClassifier(classify.New(
			classify.WithPositionThresholds(classify.PositionThresholds{
				Dominating: cfg.PositionDominating,
				Ahead:      cfg.PositionAhead,
				Even:       cfg.PositionEven,
				Behind:     cfg.PositionBehind,
			}),
			classify.WithUrgencyThresholds(classify.UrgencyThresholds{
				Relaxed:  cfg.UrgencyRelaxed,
				Alert:    cfg.UrgencyAlert,
				High:     cfg.UrgencyHigh,
				Critical: cfg.UrgencyCritical,
				Premove:  cfg.UrgencyPremove,
			}),
		)),
		WithBudgetCalculator(BudgetFromConfig(cfg)),
		WithRater(rating.NewRater(rating.WithBounds(rating.Bounds{
			Premove:   cfg.RatingPremove,
			Excellent: cfg.RatingExcellent,
			Good:      cfg.RatingGood,
			Slow:      cfg.RatingSlow,
			Costly:    cfg.RatingCostly,
		}))),
		WithMomentumTracker(momentum.NewTracker(
			momentum.WithWindow(cfg.MomentumWindow),
			momentum.WithThresholds(cfg.MomentumGaining, cfg.MomentumLosing),
		)),
		WithTurnEpsilon(cfg.TurnEpsilon),
		WithBoundaryDetector(boundary.NewContractionDetector(boundary.WithContraction(cfg.BoundaryContraction))),
		WithFeedbackDuration(cfg.FeedbackDuration()),
	}
}

// BudgetFromConfig builds the budget model on its own, for tables and simulation.
func BudgetFromConfig(cfg *config.Config) *budget.Calculator {
	return budget.NewCalculator(
		budget.WithBaseMoves(cfg.BudgetBaseMoves),
		budget.WithMinMoves(cfg.BudgetMinMoves),
		budget.WithSafetyFactor(cfg.BudgetSafetyFactor),
		budget.WithScramble(cfg.BudgetScrambleThreshold, cfg.BudgetScrambleSeconds),
	)
}
