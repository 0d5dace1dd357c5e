// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package significance maps the primary p-value of a StatisticSet onto a
// fixed ladder of significance levels.
package significance

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Thresholds of the ladder. Comparisons are strict: p = 0.05 is not significant.
const (
	ThresholdHighly = 0.001
	ThresholdVery   = 0.01
	ThresholdAlpha  = 0.05
)

// ladder is evaluated from strictest to loosest.
var ladder = []struct {
	threshold float64
	level     types.SignificanceLevel
}{
	{ThresholdHighly, types.HighlySignificant},
	{ThresholdVery, types.VerySignificant},
	{ThresholdAlpha, types.Significant},
}

var interpretations = map[types.SignificanceLevel]string{
	types.HighlySignificant: "Highly significant results (p < 0.001) - Very strong evidence",
	types.VerySignificant:   "Very significant results (p < 0.01) - Strong evidence",
	types.Significant:       "Significant results (p < 0.05) - Moderate evidence",
	types.NotSignificant:    "Not statistically significant (p ≥ 0.05) - Weak evidence",
}

// Classify selects the primary p-value and returns the verdict for it.
func Classify(set types.StatisticSet) types.SignificanceVerdict {
	primary, ok := Primary(set)
	if !ok {
		return types.SignificanceVerdict{
			Level:          types.Undetermined,
			Interpretation: undeterminedInterpretation(set),
		}
	}

	level := classifyStatistic(primary)
	interp, ok := interpretations[level]
	if !ok {
		interp = fmt.Sprintf("Inconclusive: p %s %g does not fix a significance level", primary.Relation, *primary.Bound)
	}
	return types.SignificanceVerdict{
		Level:          level,
		Primary:        &primary,
		Interpretation: interp,
	}
}

// Primary selects the p-value that drives classification: the smallest exact
// value; failing that, the tightest upper bound ("<" before "<=" on equal
// bounds); failing that, the largest lower bound. Ties keep the earliest
// occurrence in the text.
func Primary(set types.StatisticSet) (types.Statistic, bool) {
	var exact, upper, lower *types.Statistic

	for _, st := range set.ByKind(types.KindPValue) {
		switch {
		case st.Value != nil:
			if exact == nil || *st.Value < *exact.Value {
				exact = &st
			}
		case st.Bound != nil && st.Relation.IsUpperBound():
			if upper == nil || tighterUpper(st, *upper) {
				upper = &st
			}
		case st.Bound != nil && st.Relation.IsLowerBound():
			if lower == nil || *st.Bound > *lower.Bound {
				lower = &st
			}
		}
	}

	for _, pick := range []*types.Statistic{exact, upper, lower} {
		if pick != nil {
			return *pick, true
		}
	}
	return types.Statistic{}, false
}

func tighterUpper(a, b types.Statistic) bool {
	if *a.Bound != *b.Bound {
		return *a.Bound < *b.Bound
	}
	return a.Relation == types.RelLess && b.Relation == types.RelLessEqual
}

// classifyStatistic applies the ladder. An upper bound counts as below a
// threshold only when every value it admits is below it; a lower bound can
// only establish non-significance.
func classifyStatistic(p types.Statistic) types.SignificanceLevel {
	if p.Value != nil {
		return Level(*p.Value)
	}

	b := *p.Bound
	switch p.Relation {
	case types.RelLess:
		for _, rung := range ladder {
			if b <= rung.threshold {
				return rung.level
			}
		}
	case types.RelLessEqual:
		for _, rung := range ladder {
			if b < rung.threshold {
				return rung.level
			}
		}
	case types.RelGreater, types.RelGreaterEqual:
		if b >= ThresholdAlpha {
			return types.NotSignificant
		}
	}
	return types.Undetermined
}

// Level maps an exact p-value onto the ladder.
func Level(p float64) types.SignificanceLevel {
	for _, rung := range ladder {
		if p < rung.threshold {
			return rung.level
		}
	}
	return types.NotSignificant
}

// undeterminedInterpretation falls back to statistical power from the mean
// sample size when no p-value was found.
func undeterminedInterpretation(set types.StatisticSet) string {
	sizes := set.Values(types.KindSampleSize)
	if len(sizes) == 0 {
		return "No p-values found - significance undetermined"
	}
	mean, err := stats.Mean(sizes)
	if err != nil {
		return "No p-values found - significance undetermined"
	}
	switch {
	case mean > 1000:
		return fmt.Sprintf("Large sample size (avg: %d) - Good statistical power", int(mean))
	case mean > 100:
		return fmt.Sprintf("Moderate sample size (avg: %d) - Adequate for most analyses", int(mean))
	default:
		return fmt.Sprintf("Small sample size (avg: %d) - Limited statistical power", int(mean))
	}
}
