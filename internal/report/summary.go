package report

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"

	"github.com/sells-group/model-compare/internal/dataset"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorWin    = lipgloss.Color("#2CA02C")
	colorLoss   = lipgloss.Color("#E74C3C")
	colorMuted  = lipgloss.Color("#6C7A80")

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1).
			Width(22).
			Align(lipgloss.Center)

	tileTitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	noticeStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// Summary writes the four stat tiles, the average-difference line, a parse
// quality note when the load was not clean, and the narrative reading of
// the result. All undefined values print as N/A.
func Summary(ds dataset.Dataset, st dataset.Stats, rpt dataset.Report, w io.Writer) {
	if len(ds) == 0 {
		fmt.Fprintln(w, noticeStyle.Render(
			"No data loaded.\nCheck that the input file exists and has the expected columns."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render("Neural Net vs XGBoost AUROC comparison"))
	fmt.Fprintln(w)

	tiles := lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Comparisons", fmt.Sprintf("%d", st.Total), lipgloss.NoColor{}),
		tile("Deep Learning wins", countPct(st.Wins, st.WinPct()), colorWin),
		tile("XGBoost wins", countPct(st.Losses, st.LossPct()), colorLoss),
		tile("Ties", countPct(st.Ties, st.TiePct()), colorMuted),
	)
	fmt.Fprintln(w, tiles)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Average AUROC difference: %s%s\n",
		FormatValue(st.AverageDifference), leader(st.AverageDifference))

	if !rpt.Clean() || st.SourceMismatches > 0 {
		fmt.Fprintf(w, "Data quality: %d unparseable rows, %d defaulted fields, %d source-difference mismatches\n",
			rpt.RowErrors, rpt.BadFields, st.SourceMismatches)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, narrative(st))
}

func tile(title, value string, valueColor lipgloss.TerminalColor) string {
	body := tileTitleStyle.Render(title) + "\n" +
		lipgloss.NewStyle().Bold(true).Foreground(valueColor).Render(value)
	return tileStyle.Render(body)
}

func countPct(n int, p float64) string {
	if math.IsNaN(p) {
		return fmt.Sprintf("%d (N/A)", n)
	}
	return fmt.Sprintf("%d (%.1f%%)", n, p)
}

func leader(avg float64) string {
	switch {
	case math.IsNaN(avg) || math.IsInf(avg, 0):
		return ""
	case avg > 0:
		return " (Neural Net ahead)"
	case avg < 0:
		return " (XGBoost ahead)"
	default:
		return " (dead even)"
	}
}

// narrative gives the static interpretive text shown under the tiles.
func narrative(st dataset.Stats) string {
	base := "Each point is one evaluation run; the difference is the Neural Net AUROC minus the XGBoost AUROC, so points above the zero line favor deep learning."
	switch {
	case math.IsNaN(st.AverageDifference):
		return base + " No run produced a defined difference, so the average is undefined."
	case st.Wins > st.Losses:
		return base + " Across this dataset the neural network comes out ahead more often than the gradient-boosted trees."
	case st.Losses > st.Wins:
		return base + " Across this dataset the gradient-boosted trees come out ahead more often than the neural network."
	default:
		return base + " Across this dataset the two approaches are evenly matched."
	}
}
