// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

func TestReconcile(t *testing.T) {
	text := Extract("Treatment helped (p = 0.01) in n = 120 adults; 95% CI [1.2, 3.4].")
	model := Extract("- p=0.01\n- N = 100\n- 95% CI: 1.2, 3.4\n- 45% responded")

	rec := Reconcile(text, model)

	assert.Equal(t, []types.StatisticKind{types.KindPValue, types.KindConfidenceInterval}, kinds(rec.Confirmed))
	assert.Equal(t, []types.StatisticKind{types.KindSampleSize}, kinds(rec.TextOnly))
	assert.Equal(t, []types.StatisticKind{types.KindSampleSize, types.KindPercentage}, kinds(rec.ModelOnly))
}

func TestReconcileRelationMustMatch(t *testing.T) {
	rec := Reconcile(Extract("p < 0.05"), Extract("p = 0.05"))

	assert.Empty(t, rec.Confirmed)
	assert.Len(t, rec.TextOnly, 1)
	assert.Len(t, rec.ModelOnly, 1)
}

func TestReconcileEachModelStatisticUsedOnce(t *testing.T) {
	rec := Reconcile(Extract("p = 0.03 and again p = 0.03"), Extract("p = 0.03"))

	assert.Len(t, rec.Confirmed, 1)
	assert.Len(t, rec.TextOnly, 1)
	assert.Empty(t, rec.ModelOnly)
}

func TestReconcileLeavesInputsUntouched(t *testing.T) {
	text := Extract("p = 0.2, n = 40")
	model := Extract("p = 0.2")
	before := Extract("p = 0.2, n = 40")

	Reconcile(text, model)

	assert.Equal(t, before, text)
}

func TestReconcileEmpty(t *testing.T) {
	rec := Reconcile(types.StatisticSet{}, types.StatisticSet{})

	assert.Empty(t, rec.Confirmed)
	assert.Empty(t, rec.TextOnly)
	assert.Empty(t, rec.ModelOnly)
}

func kinds(stats []types.Statistic) []types.StatisticKind {
	var out []types.StatisticKind
	for _, st := range stats {
		out = append(out, st.Kind)
	}
	return out
}
