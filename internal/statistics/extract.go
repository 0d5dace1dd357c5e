// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package statistics pulls p-values, sample sizes, percentages, and
// confidence intervals out of paper text with a fixed set of pattern rules,
// and reconciles them against statistics reported by the language model.
//
// Extraction is pure and deterministic: the same text always produces the
// same StatisticSet in the same order.
package statistics

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Number fragments shared by the rules. numPattern also matches malformed
// forms such as "0..5"; parseNumber rejects them as a whole. A bare power of
// ten ("10^-6", "10−5") is tried before the plain number so it is not cut
// short at "10".
const (
	numPattern    = `(10\s*(?:\^\s*[-−]|−)\s*\d+|(?:\d+(?:\.\d*)*|\.\d[\d.]*)(?:\s*e\s*[-−+]?\s*\d+|\s*[×x*]\s*10\s*\^?\s*[-−]\s*\d+)?)`
	countPattern  = `(\d{1,3}(?:,\d{3})+|\d+)`
	boundPattern  = `([-−]?(?:\d+(?:\.\d+)?|\.\d+))`
	relationWords = `<=|>=|=<|=>|≤|≥|<|>|=|(?:is\s+|was\s+)?(?:(?:less|smaller|lower|greater|larger|higher)\s+than(?:\s+or\s+equal\s+to)?|equal\s+to|equals|of)|is|was`
	peopleWords   = `participants|subjects|patients|respondents|individuals`
	maxSampleSize = 1000000
)

// Rule specificity. On overlapping spans the higher value wins, so a
// confidence interval absorbs the percentage that states its level.
const (
	specPercentage = iota + 1
	specSampleSize
	specPValue
	specInterval
)

// rule is one pattern and the builder that turns a match into a Statistic.
// build returns false for malformed or out-of-range values.
type rule struct {
	kind        types.StatisticKind
	specificity int
	re          *regexp.Regexp
	build       func(groups []string) (types.Statistic, bool)
}

var rules = []rule{
	{
		kind:        types.KindConfidenceInterval,
		specificity: specInterval,
		re: regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*%\s*(?:CI|confidence\s+intervals?)[:=,\s]*[\[(]?\s*` +
			boundPattern + `\s*(?:,|;|to|–|—)\s*` + boundPattern + `\s*[\])]?`),
		build: buildInterval,
	},
	{
		kind:        types.KindPValue,
		specificity: specPValue,
		re:          regexp.MustCompile(`(?i)\bp(?:\s*-?\s*values?)?\s*(` + relationWords + `)\s*` + numPattern),
		build:       buildPValue,
	},
	{
		// A colon reads as a p-value only after the full "p-value" label;
		// "Type P: 0.5 mm" is a label, not a statistic.
		kind:        types.KindPValue,
		specificity: specPValue,
		re:          regexp.MustCompile(`(?i)\bp\s*-?\s*values?\s*(:)\s*` + numPattern),
		build:       buildPValue,
	},
	{
		kind:        types.KindSampleSize,
		specificity: specSampleSize,
		re:          regexp.MustCompile(`(?i)\bn\s*=\s*` + countPattern),
		build:       buildSampleSize,
	},
	{
		kind:        types.KindSampleSize,
		specificity: specSampleSize,
		re:          regexp.MustCompile(`(?i)\b(?:sample\s+size|` + peopleWords + `)\s*(?:[=:]|of)\s*` + countPattern),
		build:       buildSampleSize,
	},
	{
		kind:        types.KindSampleSize,
		specificity: specSampleSize,
		re:          regexp.MustCompile(`(?i)\bsample\s+of\s+` + countPattern),
		build:       buildSampleSize,
	},
	{
		kind:        types.KindSampleSize,
		specificity: specSampleSize,
		re:          regexp.MustCompile(`(?i)\b` + countPattern + `\s+(?:` + peopleWords + `)\b`),
		build:       buildSampleSize,
	},
	{
		kind:        types.KindPercentage,
		specificity: specPercentage,
		re:          regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`),
		build:       buildPercentage,
	},
}

// candidate is a built statistic with its span and the specificity of the
// rule that produced it.
type candidate struct {
	stat        types.Statistic
	start, end  int
	specificity int
}

// Extract scans text with every rule and returns the deduplicated matches in
// source order. Text without statistics yields an empty set.
func Extract(text string) types.StatisticSet {
	var cands []candidate
	for _, r := range rules {
		for _, loc := range r.re.FindAllStringSubmatchIndex(text, -1) {
			groups := submatches(text, loc)
			st, ok := r.build(groups)
			if !ok {
				continue
			}
			st.Kind = r.kind
			st.RawText = text[loc[0]:loc[1]]
			st.Offset = loc[0]
			cands = append(cands, candidate{stat: st, start: loc[0], end: loc[1], specificity: r.specificity})
		}
	}

	kept := dedupe(cands)

	set := types.StatisticSet{Statistics: make([]types.Statistic, 0, len(kept))}
	for _, c := range kept {
		set.Statistics = append(set.Statistics, c.stat)
	}
	return set
}

// dedupe keeps one candidate per overlapping region: the most specific rule
// first, then the longer span, then the earlier one. The survivors are
// returned in source order.
func dedupe(cands []candidate) []candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.specificity != b.specificity {
			return a.specificity > b.specificity
		}
		if la, lb := a.end-a.start, b.end-b.start; la != lb {
			return la > lb
		}
		return a.start < b.start
	})

	var kept []candidate
	for _, c := range cands {
		overlaps := false
		for _, k := range kept {
			if c.start < k.end && k.start < c.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].start < kept[j].start
	})
	return kept
}

// submatches converts a FindAllStringSubmatchIndex entry into strings.
// Unmatched optional groups become "".
func submatches(text string, loc []int) []string {
	groups := make([]string, len(loc)/2)
	for i := range groups {
		if s, e := loc[2*i], loc[2*i+1]; s >= 0 {
			groups[i] = text[s:e]
		}
	}
	return groups
}

func buildPValue(g []string) (types.Statistic, bool) {
	rel, ok := parseRelation(g[1])
	if !ok {
		return types.Statistic{}, false
	}
	v, ok := parseNumber(g[2])
	if !ok || v < 0 || v > 1 {
		return types.Statistic{}, false
	}
	st := types.Statistic{Relation: rel}
	if rel == types.RelEqual {
		st.Value = &v
	} else {
		st.Bound = &v
	}
	return st, true
}

func buildSampleSize(g []string) (types.Statistic, bool) {
	n, ok := parseCount(g[1])
	if !ok || n <= 0 || n >= maxSampleSize {
		return types.Statistic{}, false
	}
	v := float64(n)
	return types.Statistic{Value: &v}, true
}

func buildPercentage(g []string) (types.Statistic, bool) {
	v, ok := parseNumber(g[1])
	if !ok || v < 0 || v > 100 {
		return types.Statistic{}, false
	}
	return types.Statistic{Value: &v}, true
}

func buildInterval(g []string) (types.Statistic, bool) {
	level, ok := parseNumber(g[1])
	if !ok || level <= 0 || level >= 100 {
		return types.Statistic{}, false
	}
	lo, okLo := parseNumber(g[2])
	hi, okHi := parseNumber(g[3])
	if !okLo || !okHi || lo > hi {
		return types.Statistic{}, false
	}
	return types.Statistic{Level: &level, Lower: &lo, Upper: &hi}, true
}

// parseRelation maps a symbol or spelled-out comparison to a Relation.
func parseRelation(op string) (types.Relation, bool) {
	op = strings.ToLower(strings.Join(strings.Fields(op), " "))
	switch op {
	case "=", ":", "of", "is", "was", "equals", "equal to", "is equal to", "was equal to", "is of", "was of":
		return types.RelEqual, true
	case "<":
		return types.RelLess, true
	case "<=", "=<", "≤":
		return types.RelLessEqual, true
	case ">":
		return types.RelGreater, true
	case ">=", "=>", "≥":
		return types.RelGreaterEqual, true
	}

	orEqual := strings.HasSuffix(op, "or equal to")
	switch {
	case strings.Contains(op, "less"), strings.Contains(op, "smaller"), strings.Contains(op, "lower"):
		if orEqual {
			return types.RelLessEqual, true
		}
		return types.RelLess, true
	case strings.Contains(op, "greater"), strings.Contains(op, "larger"), strings.Contains(op, "higher"):
		if orEqual {
			return types.RelGreaterEqual, true
		}
		return types.RelGreater, true
	}
	return "", false
}
