// Package dataset loads, parses, and aggregates paired model-evaluation
// AUROC scores from CSV and XLSX sources.
package dataset

import "math"

// ScoreRow is one typed record parsed from the input file.
type ScoreRow struct {
	Index            int  // value of the "Row Index" column
	HasIndex         bool // false when the column is absent or non-integer
	XGBoost          float64
	NeuralNet        float64
	SourceDifference float64 // the file's own Difference column, never displayed
	HasSource        bool    // false when the column is absent or non-numeric
}

// Comparison is one derived row of the dataset. Difference is always
// recomputed from the two AUROC values; SourceDifference is carried only
// for cross-validation and only when the input actually supplied one.
type Comparison struct {
	RowIndex         int
	XGBoost          float64
	NeuralNet        float64
	Difference       float64
	SourceDifference float64
	HasSource        bool
}

// Dataset is the ordered sequence of comparisons. It is immutable once
// produced and replaced wholesale on reload.
type Dataset []Comparison

// Report tallies parse-side problems. None of them abort a load.
type Report struct {
	RowErrors int // lines the tokenizer rejected (logged, skipped)
	BadFields int // numeric fields that defaulted to 0 (logged)
}

// Clean reports whether the parse completed without incident.
func (r Report) Clean() bool {
	return r.RowErrors == 0 && r.BadFields == 0
}

// Stats summarizes a Dataset.
//
// AverageDifference is the mean over rows with a finite Difference; it is
// NaN when no such row exists, including the empty dataset. Presentation
// layers format NaN as "N/A".
type Stats struct {
	Total             int
	Wins              int // Difference > 0 (deep learning ahead)
	Losses            int // Difference < 0 (XGBoost ahead)
	Ties              int // Difference == 0
	AverageDifference float64
	SourceMismatches  int // rows whose source Difference disagrees with the recomputed one
}

// WinPct returns Wins as a percentage of Total, NaN when Total is 0.
func (s Stats) WinPct() float64 { return pct(s.Wins, s.Total) }

// LossPct returns Losses as a percentage of Total, NaN when Total is 0.
func (s Stats) LossPct() float64 { return pct(s.Losses, s.Total) }

// TiePct returns Ties as a percentage of Total, NaN when Total is 0.
func (s Stats) TiePct() float64 { return pct(s.Ties, s.Total) }

func pct(n, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return float64(n) / float64(total) * 100
}
