package present

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/pacer/internal/domain/model"
	"github.com/okian/pacer/internal/domain/types"
)

// BudgetTable renders the budget curve: remaining time, the estimate of
// moves left, and the resulting allowance per move.
func BudgetTable(w io.Writer, rows []types.BudgetRow, useColors bool) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Remaining", "Est. Moves", "Budget", "Mode"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	scramble, normal := fmt.Sprint, fmt.Sprint
	if useColors {
		scramble = warningColor.SprintFunc()
		normal = positionColor(model.PositionAhead).SprintFunc()
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		mode := normal("paced")
		moves := strconv.FormatFloat(r.EstimatedMoves, 'f', 0, 64)
		if r.Scramble {
			mode = scramble("scramble")
			moves = "-"
		}
		data = append(data, []string{
			fmt.Sprintf("%.0fs", r.Remaining),
			moves,
			FormatBudget(r.Budget),
			mode,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// SummaryTable renders per-rating move counts for a finished session.
func SummaryTable(w io.Writer, st types.SessionStats, useColors bool) error { //nolint:gocritic // snapshot by value
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Rating", "Moves", "Share"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(model.Ratings())+1)
	for _, r := range model.Ratings() {
		n := st.Ratings[r.String()]
		share := "-"
		if st.Moves > 0 {
			share = fmt.Sprintf("%.0f%%", 100*float64(n)/float64(st.Moves))
		}
		label := StyleFor(r).Icon + " " + r.String()
		if useColors && n > 0 && r >= model.RatingCostly {
			label = warningColor.Sprint(label)
		}
		data = append(data, []string{label, strconv.Itoa(n), share})
	}
	data = append(data, []string{"total", strconv.Itoa(st.Moves), ""})

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "session %s: %d moves, momentum %s, mean ratio %.2f, %d ticks (%d skipped)\n",
		st.SessionID, st.Moves, st.Momentum, st.MeanRatio, st.Ticks, st.SkippedTicks)
	return err
}
