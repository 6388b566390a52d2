package dataset

import "math"

// sourceTolerance bounds the disagreement allowed between the file's own
// Difference column and the recomputed value before a row counts as a
// mismatch.
const sourceTolerance = 1e-9

// Aggregate computes summary statistics in a single pass. Rows whose
// Difference is not finite are excluded from the mean and from the
// win/loss/tie partition but still count toward Total.
func Aggregate(ds Dataset) Stats {
	st := Stats{Total: len(ds)}

	var sum float64
	var finite int
	for _, c := range ds {
		if finiteVal(c.Difference) {
			sum += c.Difference
			finite++
			switch {
			case c.Difference > 0:
				st.Wins++
			case c.Difference < 0:
				st.Losses++
			default:
				st.Ties++
			}
		}
		// Rows without a supplied source difference have nothing to
		// cross-check against.
		if c.HasSource && finiteVal(c.Difference) && finiteVal(c.SourceDifference) &&
			math.Abs(c.SourceDifference-c.Difference) > sourceTolerance {
			st.SourceMismatches++
		}
	}

	if finite == 0 {
		st.AverageDifference = math.NaN()
	} else {
		st.AverageDifference = sum / float64(finite)
	}
	return st
}

func finiteVal(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
