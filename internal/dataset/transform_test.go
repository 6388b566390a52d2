package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformPreservesLengthAndOrder(t *testing.T) {
	rows := []ScoreRow{
		{Index: 10, HasIndex: true, XGBoost: 0.5, NeuralNet: 0.6},
		{Index: 7, HasIndex: true, XGBoost: 0.4, NeuralNet: 0.4},
		{Index: 3, HasIndex: true, XGBoost: 0.9, NeuralNet: 0.2},
	}

	ds := Transform(rows)
	require.Len(t, ds, len(rows))
	// Output order mirrors input order, not index order.
	assert.Equal(t, 10, ds[0].RowIndex)
	assert.Equal(t, 7, ds[1].RowIndex)
	assert.Equal(t, 3, ds[2].RowIndex)
}

func TestTransformRecomputesDifference(t *testing.T) {
	rows := []ScoreRow{
		// SourceDifference deliberately disagrees with the score pair.
		{HasIndex: true, Index: 0, XGBoost: 0.90, NeuralNet: 0.85, SourceDifference: 42},
	}

	ds := Transform(rows)
	require.Len(t, ds, 1)
	assert.InDelta(t, -0.05, ds[0].Difference, 1e-12)
	assert.Equal(t, 42.0, ds[0].SourceDifference)
}

func TestTransformPositionFallback(t *testing.T) {
	rows := []ScoreRow{
		{XGBoost: 0.5, NeuralNet: 0.6},
		{XGBoost: 0.5, NeuralNet: 0.6},
		{Index: 99, HasIndex: true, XGBoost: 0.5, NeuralNet: 0.6},
	}

	ds := Transform(rows)
	assert.Equal(t, 0, ds[0].RowIndex)
	assert.Equal(t, 1, ds[1].RowIndex)
	assert.Equal(t, 99, ds[2].RowIndex)
}

func TestTransformMissingScoresTreatedAsZero(t *testing.T) {
	// A row that parsed without a Neural Net value.
	ds := Transform([]ScoreRow{{HasIndex: true, Index: 0, XGBoost: 0.8}})
	require.Len(t, ds, 1)
	assert.InDelta(t, -0.8, ds[0].Difference, 1e-12)
}

func TestTransformTotalOnNaN(t *testing.T) {
	ds := Transform([]ScoreRow{{XGBoost: math.NaN(), NeuralNet: 0.9}})
	require.Len(t, ds, 1)
	assert.True(t, math.IsNaN(ds[0].Difference))
}

func TestTransformEmpty(t *testing.T) {
	ds := Transform(nil)
	assert.Empty(t, ds)
}

func TestTransformDeterministic(t *testing.T) {
	rows := []ScoreRow{
		{Index: 0, HasIndex: true, XGBoost: 0.90, NeuralNet: 0.85, SourceDifference: -0.05},
		{Index: 1, HasIndex: true, XGBoost: 0.80, NeuralNet: 0.95, SourceDifference: 0.15},
	}
	assert.Equal(t, Transform(rows), Transform(rows))
}
