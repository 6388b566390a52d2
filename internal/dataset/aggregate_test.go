package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateTwoRowScenario(t *testing.T) {
	ds := Transform([]ScoreRow{
		{Index: 0, HasIndex: true, XGBoost: 0.90, NeuralNet: 0.85},
		{Index: 1, HasIndex: true, XGBoost: 0.80, NeuralNet: 0.95},
	})

	st := Aggregate(ds)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 1, st.Wins)
	assert.Equal(t, 1, st.Losses)
	assert.Equal(t, 0, st.Ties)
	assert.InDelta(t, 0.05, st.AverageDifference, 1e-12)
	assert.InDelta(t, 50.0, st.WinPct(), 1e-9)
	assert.InDelta(t, 50.0, st.LossPct(), 1e-9)
	assert.InDelta(t, 0.0, st.TiePct(), 1e-9)
}

func TestAggregateEmptyDataset(t *testing.T) {
	st := Aggregate(nil)
	assert.Equal(t, 0, st.Total)
	assert.Equal(t, 0, st.Wins)
	assert.Equal(t, 0, st.Losses)
	assert.Equal(t, 0, st.Ties)
	assert.True(t, math.IsNaN(st.AverageDifference))
	assert.True(t, math.IsNaN(st.WinPct()))
	assert.True(t, math.IsNaN(st.LossPct()))
	assert.True(t, math.IsNaN(st.TiePct()))
}

func TestAggregateExcludesNonFiniteFromMean(t *testing.T) {
	ds := Dataset{
		{RowIndex: 0, Difference: 0.2},
		{RowIndex: 1, Difference: math.NaN()},
		{RowIndex: 2, Difference: 0.4},
	}

	st := Aggregate(ds)
	assert.Equal(t, 3, st.Total)
	assert.InDelta(t, 0.3, st.AverageDifference, 1e-12)
	// The NaN row is not part of the partition.
	assert.Equal(t, 2, st.Wins+st.Losses+st.Ties)
}

func TestAggregateAllInvalidYieldsNaNMean(t *testing.T) {
	ds := Dataset{
		{Difference: math.NaN()},
		{Difference: math.Inf(1)},
	}

	st := Aggregate(ds)
	assert.Equal(t, 2, st.Total)
	assert.True(t, math.IsNaN(st.AverageDifference))
	assert.Equal(t, 0, st.Wins+st.Losses+st.Ties)
}

func TestAggregatePartition(t *testing.T) {
	ds := Dataset{
		{Difference: 0.1},
		{Difference: -0.1},
		{Difference: 0},
		{Difference: 0.3},
		{Difference: 0},
	}

	st := Aggregate(ds)
	assert.Equal(t, 2, st.Wins)
	assert.Equal(t, 1, st.Losses)
	assert.Equal(t, 2, st.Ties)
	assert.Equal(t, st.Total, st.Wins+st.Losses+st.Ties)
}

func TestAggregateSourceMismatches(t *testing.T) {
	ds := Transform([]ScoreRow{
		{XGBoost: 0.90, NeuralNet: 0.85, SourceDifference: -0.05, HasSource: true}, // agrees
		{XGBoost: 0.80, NeuralNet: 0.95, SourceDifference: 0.25, HasSource: true},  // disagrees
		{XGBoost: 0.70, NeuralNet: 0.70, SourceDifference: 0, HasSource: true},     // agrees
	})

	st := Aggregate(ds)
	assert.Equal(t, 1, st.SourceMismatches)
}

func TestAggregateNoSourceColumnNoMismatches(t *testing.T) {
	// A file without a Difference column must not trip the cross-check,
	// even though every defaulted source value disagrees with the
	// recomputed difference.
	rows, rpt, err := ParseCSV("Xgboost (AUROC),Neural Net (AUROC)\n" +
		"0.80,0.95\n" +
		"0.90,0.85\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rpt.Clean())

	st := Aggregate(Transform(rows))
	assert.Equal(t, 0, st.SourceMismatches)
}

func TestAggregateDefaultedSourceValueNotCrossChecked(t *testing.T) {
	// Column present but one value unparseable: that row's source
	// difference defaulted, so only the well-formed row can mismatch.
	rows, _, err := ParseCSV(sampleHeader +
		"0,0.80,0.95,oops\n" +
		"1,0.90,0.85,0.40\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.False(t, rows[0].HasSource)
	assert.True(t, rows[1].HasSource)

	st := Aggregate(Transform(rows))
	assert.Equal(t, 1, st.SourceMismatches)
}

func TestAggregateIdempotent(t *testing.T) {
	ds := Transform([]ScoreRow{
		{Index: 0, HasIndex: true, XGBoost: 0.90, NeuralNet: 0.85},
		{Index: 1, HasIndex: true, XGBoost: 0.80, NeuralNet: 0.95},
	})
	require.Equal(t, Aggregate(ds), Aggregate(ds))
}
