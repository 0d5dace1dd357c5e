// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StatisticKind tags a statistic extracted from paper text.
type StatisticKind string

const (
	KindPValue             StatisticKind = "p_value"
	KindSampleSize         StatisticKind = "sample_size"
	KindPercentage         StatisticKind = "percentage"
	KindConfidenceInterval StatisticKind = "confidence_interval"
)

// Relation is the comparison operator reported with a p-value.
type Relation string

const (
	RelEqual        Relation = "="
	RelLess         Relation = "<"
	RelLessEqual    Relation = "<="
	RelGreater      Relation = ">"
	RelGreaterEqual Relation = ">="
)

// IsUpperBound reports whether the relation caps the value from above.
func (r Relation) IsUpperBound() bool {
	return r == RelLess || r == RelLessEqual
}

// IsLowerBound reports whether the relation bounds the value from below.
func (r Relation) IsLowerBound() bool {
	return r == RelGreater || r == RelGreaterEqual
}

// Statistic is one matched span of text with its parsed value.
type Statistic struct {
	Kind StatisticKind `json:"kind" yaml:"kind"`

	// RawText is the matched text exactly as it appears in the source.
	RawText string `json:"raw_text" yaml:"raw_text"`

	// Value is the exact numeric value. Nil for inequality p-values and
	// confidence intervals, which carry a bound or a range instead.
	Value *float64 `json:"numeric_value,omitempty" yaml:"numeric_value,omitempty"`

	// Relation and Bound are set for p-values. Bound is nil when Relation is "=".
	Relation Relation `json:"relation,omitempty" yaml:"relation,omitempty"`
	Bound    *float64 `json:"bound,omitempty" yaml:"bound,omitempty"`

	// Level, Lower, and Upper describe a confidence interval (e.g. 95, 1.2, 3.4).
	Level *float64 `json:"level,omitempty" yaml:"level,omitempty"`
	Lower *float64 `json:"lower,omitempty" yaml:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty" yaml:"upper,omitempty"`

	// Offset is the byte offset of RawText in the source text.
	Offset int `json:"offset" yaml:"offset"`
}

// Number returns the exact value or, failing that, the bound.
func (s Statistic) Number() (float64, bool) {
	if s.Value != nil {
		return *s.Value, true
	}
	if s.Bound != nil {
		return *s.Bound, true
	}
	return 0, false
}

// StatisticSet is the ordered list of statistics found in one text.
// Order follows the position of each match in the source.
type StatisticSet struct {
	Statistics []Statistic `json:"statistics" yaml:"statistics"`
}

// Len returns the number of statistics in the set.
func (s StatisticSet) Len() int { return len(s.Statistics) }

// IsEmpty reports whether nothing was extracted.
func (s StatisticSet) IsEmpty() bool { return len(s.Statistics) == 0 }

// ByKind returns the statistics of one kind in source order.
func (s StatisticSet) ByKind(kind StatisticKind) []Statistic {
	var out []Statistic
	for _, st := range s.Statistics {
		if st.Kind == kind {
			out = append(out, st)
		}
	}
	return out
}

// Values returns the exact values of one kind, skipping bounds and ranges.
func (s StatisticSet) Values(kind StatisticKind) []float64 {
	var out []float64
	for _, st := range s.Statistics {
		if st.Kind == kind && st.Value != nil {
			out = append(out, *st.Value)
		}
	}
	return out
}

// MaxSampleSize returns the largest sample size in the set.
func (s StatisticSet) MaxSampleSize() (int, bool) {
	best, found := 0, false
	for _, v := range s.Values(KindSampleSize) {
		if !found || int(v) > best {
			best, found = int(v), true
		}
	}
	return best, found
}
