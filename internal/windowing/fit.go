package windowing

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
)

// ErrOverBudget is returned when the newest unit alone exceeds the budget.
var ErrOverBudget = errors.New("newest message exceeds the input token budget")

type Stats struct {
	Budget   int
	Total    int // estimated cost of the returned window
	Included int // units kept
	Dropped  int // older units left out
}

// Fit returns the longest suffix of msgs, made of whole units, whose
// estimated cost is within budget. A nil Counter means RuneCounter.
func Fit(msgs []anthropic.MessageParam, budget int, c Counter) ([]anthropic.MessageParam, Stats, error) {
	stats := Stats{Budget: budget}
	if len(msgs) == 0 {
		return nil, stats, nil
	}
	if c == nil {
		c = RuneCounter{}
	}

	units := Units(msgs)
	start := len(msgs)
	for i := len(units) - 1; i >= 0; i-- {
		cost := unitCost(units[i], msgs, c)
		if stats.Total+cost > budget {
			break
		}
		stats.Total += cost
		stats.Included++
		start = units[i].Start
	}
	stats.Dropped = len(units) - stats.Included
	if stats.Included == 0 {
		return nil, stats, ErrOverBudget
	}
	return msgs[start:], stats, nil
}
