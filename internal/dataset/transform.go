package dataset

// Transform derives the comparison sequence from parsed rows. It is total
// and order preserving: output[i] derives from rows[i] alone, and a row
// without a usable index falls back to its zero-based position. Difference
// is always recomputed from the two AUROC values, never taken from the
// file's own Difference column.
func Transform(rows []ScoreRow) Dataset {
	ds := make(Dataset, len(rows))
	for i, r := range rows {
		idx := i
		if r.HasIndex {
			idx = r.Index
		}
		ds[i] = Comparison{
			RowIndex:         idx,
			XGBoost:          r.XGBoost,
			NeuralNet:        r.NeuralNet,
			Difference:       r.NeuralNet - r.XGBoost,
			SourceDifference: r.SourceDifference,
			HasSource:        r.HasSource,
		}
	}
	return ds
}
