package pnl

import (
	"fmt"
	"math"
)

type Percent float64

// UndefinedPercent is the sentinel for a ratio whose denominator is zero or
// unknown (for example the gain percent of a position with no cost basis).
// It renders as a dash; arithmetic on it stays undefined.
var UndefinedPercent = Percent(math.NaN())

// IsDefined reports whether p holds an actual ratio.
func (p Percent) IsDefined() bool { return !math.IsNaN(float64(p)) }

func (p Percent) Equal(q Percent) bool {
	if !p.IsDefined() || !q.IsDefined() {
		return p.IsDefined() == q.IsDefined()
	}
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if !p.IsDefined() {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	if !p.IsDefined() {
		return "-"
	}
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}
