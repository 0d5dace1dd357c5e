// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statistics

import (
	"math"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const matchTolerance = 1e-9

// Reconcile compares statistics found in the paper text with statistics the
// model reported. Both sets are produced independently; Reconcile only
// classifies them and never alters either one. Each model statistic can
// confirm at most one text statistic.
func Reconcile(text, model types.StatisticSet) types.Reconciliation {
	used := make([]bool, len(model.Statistics))
	var rec types.Reconciliation

	for _, ts := range text.Statistics {
		matched := false
		for i, ms := range model.Statistics {
			if used[i] || !sameStatistic(ts, ms) {
				continue
			}
			used[i] = true
			matched = true
			break
		}
		if matched {
			rec.Confirmed = append(rec.Confirmed, ts)
		} else {
			rec.TextOnly = append(rec.TextOnly, ts)
		}
	}

	for i, ms := range model.Statistics {
		if !used[i] {
			rec.ModelOnly = append(rec.ModelOnly, ms)
		}
	}
	return rec
}

// sameStatistic reports whether two statistics state the same fact,
// regardless of how the text spelled them.
func sameStatistic(a, b types.Statistic) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == types.KindConfidenceInterval {
		return equalPtr(a.Level, b.Level) && equalPtr(a.Lower, b.Lower) && equalPtr(a.Upper, b.Upper)
	}
	if a.Kind == types.KindPValue && a.Relation != b.Relation {
		return false
	}
	return equalPtr(a.Value, b.Value) && equalPtr(a.Bound, b.Bound)
}

func equalPtr(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) <= matchTolerance*math.Max(1, math.Max(math.Abs(*a), math.Abs(*b)))
}
