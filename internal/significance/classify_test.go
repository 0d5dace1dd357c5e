// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package significance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-analyzer/internal/statistics"
	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		p    float64
		want types.SignificanceLevel
	}{
		{0.0005, types.HighlySignificant},
		{0.000999, types.HighlySignificant},
		{0.001, types.VerySignificant},
		{0.005, types.VerySignificant},
		{0.01, types.Significant},
		{0.049, types.Significant},
		{0.05, types.NotSignificant},
		{0.2, types.NotSignificant},
		{1, types.NotSignificant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.p), "Level(%g)", tt.p)
	}
}

func TestClassifyFromText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    types.SignificanceLevel
		primary float64
	}{
		{"highly significant", "p=0.0005", types.HighlySignificant, 0.0005},
		{"exact threshold is not significant", "p=0.05", types.NotSignificant, 0.05},
		{"smallest of several", "p=0.2 and later p=0.001", types.HighlySignificant, 0.001},
		{"exact value preferred over bounds", "p < 0.001 but overall p = 0.03", types.Significant, 0.03},
		{"upper bound at alpha", "p < 0.05", types.Significant, 0.05},
		{"inclusive upper bound at alpha", "p ≤ 0.05", types.NotSignificant, 0.05},
		{"tightest upper bound", "p < 0.05, p < 0.01", types.VerySignificant, 0.01},
		{"lower bound above alpha", "p > 0.05", types.NotSignificant, 0.05},
		{"largest lower bound", "p > 0.1 and p > 0.3", types.NotSignificant, 0.3},
		{"bare power of ten bound", "Effects were tiny (p < 10^-6).", types.HighlySignificant, 1e-6},
		{"bare power of ten exact", "p = 10−5", types.HighlySignificant, 1e-5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify(statistics.Extract(tt.text))

			assert.Equal(t, tt.want, v.Level)
			require.NotNil(t, v.Primary)
			n, ok := v.Primary.Number()
			require.True(t, ok)
			assert.InDelta(t, tt.primary, n, 1e-12)
			assert.NotEmpty(t, v.Interpretation)
		})
	}
}

func TestClassifyInconclusiveBounds(t *testing.T) {
	for _, text := range []string{"p < 0.2", "p > 0.01"} {
		t.Run(text, func(t *testing.T) {
			v := Classify(statistics.Extract(text))

			assert.Equal(t, types.Undetermined, v.Level)
			assert.NotNil(t, v.Primary)
			assert.Contains(t, v.Interpretation, "Inconclusive")
		})
	}
}

func TestClassifyNoPValue(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		interp string
	}{
		{"nothing at all", "no numbers here", "undetermined"},
		{"small sample", "n = 40 and n = 60", "Small sample size (avg: 50)"},
		{"moderate sample", "n = 400", "Moderate sample size (avg: 400)"},
		{"large sample", "N = 2,500", "Large sample size (avg: 2500)"},
		{"eligibility age is not a sample", "n = 150 adults. Participants were 18 years or older.", "Moderate sample size (avg: 150)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Classify(statistics.Extract(tt.text))

			assert.Equal(t, types.Undetermined, v.Level)
			assert.Nil(t, v.Primary)
			assert.Contains(t, v.Interpretation, tt.interp)
		})
	}
}

func TestPrimaryTieKeepsFirst(t *testing.T) {
	set := statistics.Extract("p = 0.01 in arm A, p = 0.01 in arm B")

	p, ok := Primary(set)
	require.True(t, ok)
	assert.Equal(t, set.ByKind(types.KindPValue)[0].Offset, p.Offset)
}

func TestPrimaryPrefersStrictBoundOnTie(t *testing.T) {
	p, ok := Primary(statistics.Extract("p ≤ 0.01 and p < 0.01"))
	require.True(t, ok)
	assert.Equal(t, types.RelLess, p.Relation)
}
