// Package report renders the comparison dataset: a PNG line chart and
// terminal summary tiles.
package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sells-group/model-compare/internal/dataset"
)

// ChartOptions sizes and titles the rendered chart.
type ChartOptions struct {
	Title  string
	Width  int
	Height int
}

// Chart renders the per-row AUROC difference as a line chart with two
// horizontal reference lines (zero, and the average difference when it is
// defined), a legend, and 4-decimal axis labels. An empty or all-invalid
// dataset renders a "no data" placeholder instead of failing.
func Chart(ds dataset.Dataset, st dataset.Stats, opts ChartOptions) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = 1100
	}
	if opts.Height <= 0 {
		opts.Height = 500
	}
	if opts.Title == "" {
		opts.Title = "Neural Net vs XGBoost (AUROC difference)"
	}

	xs, ys := plottable(ds)
	if len(xs) == 0 {
		return placeholder(opts, "No data")
	}
	// go-chart needs at least two X values to establish a range.
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Neural Net - XGBoost",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorBlue,
				StrokeWidth: 1.5,
			},
		},
		refLine("Zero", xs, 0, chart.Style{
			StrokeColor:     chart.ColorAlternateGray,
			StrokeWidth:     1.0,
			StrokeDashArray: []float64{4, 4},
		}),
	}
	if !math.IsNaN(st.AverageDifference) {
		series = append(series, refLine(
			fmt.Sprintf("Avg %s", FormatValue(st.AverageDifference)),
			xs, st.AverageDifference,
			chart.Style{
				StrokeColor:     drawing.Color{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
				StrokeWidth:     1.0,
				StrokeDashArray: []float64{6, 3},
			},
		))
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 32}},
		XAxis: chart.XAxis{
			Name:           "Row Index",
			ValueFormatter: intFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "AUROC difference",
			ValueFormatter: floatFormatter,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, eris.Wrap(err, "report: render chart")
	}
	return buf.Bytes(), nil
}

// FormatValue renders a chart/summary value to the shared 4-decimal
// contract, "N/A" when undefined.
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// plottable filters out rows whose difference is not finite; those rows
// still count in the aggregate but cannot be drawn.
func plottable(ds dataset.Dataset) ([]float64, []float64) {
	xs := make([]float64, 0, len(ds))
	ys := make([]float64, 0, len(ds))
	for _, c := range ds {
		if math.IsNaN(c.Difference) || math.IsInf(c.Difference, 0) {
			continue
		}
		xs = append(xs, float64(c.RowIndex))
		ys = append(ys, c.Difference)
	}
	return xs, ys
}

func refLine(name string, xs []float64, y float64, style chart.Style) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{xs[0], xs[len(xs)-1]},
		YValues: []float64{y, y},
		Style:   style,
	}
}

func floatFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return FormatValue(f)
	}
	return ""
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.Itoa(int(math.Round(f)))
	}
	return ""
}

// placeholder renders a flat dark image with a centered message so the
// output file is still produced for empty datasets.
func placeholder(opts ChartOptions, text string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	for y := 0; y < opts.Height; y++ {
		for x := 0; x < opts.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 18, G: 18, B: 18, A: 255})
		}
	}

	face := basicfont.Face7x13
	dr := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 220, G: 220, B: 220, A: 255}),
		Face: face,
	}
	tw := dr.MeasureString(text).Ceil()
	dr.Dot = fixed.Point26_6{
		X: fixed.I((opts.Width - tw) / 2),
		Y: fixed.I(opts.Height / 2),
	}
	dr.DrawString(text)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, eris.Wrap(err, "report: encode placeholder")
	}
	return buf.Bytes(), nil
}
