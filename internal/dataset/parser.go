package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Input column headers, matched case-insensitively after trimming.
const (
	colRowIndex   = "row index"
	colXGBoost    = "xgboost (auroc)"
	colNeuralNet  = "neural net (auroc)"
	colDifference = "difference"
)

// columns maps known headers to their positions. -1 means absent.
type columns struct {
	index      int
	xgboost    int
	neuralNet  int
	difference int
}

// resolveColumns validates the header row. The two AUROC columns are
// required; Row Index and Difference are optional. Extra columns are ignored.
func resolveColumns(header []string) (columns, error) {
	cols := columns{index: -1, xgboost: -1, neuralNet: -1, difference: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case colRowIndex:
			cols.index = i
		case colXGBoost:
			cols.xgboost = i
		case colNeuralNet:
			cols.neuralNet = i
		case colDifference:
			cols.difference = i
		}
	}

	var missing []string
	if cols.xgboost < 0 {
		missing = append(missing, colXGBoost)
	}
	if cols.neuralNet < 0 {
		missing = append(missing, colNeuralNet)
	}
	if len(missing) > 0 {
		return cols, eris.Errorf("parser: required columns missing from header: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

// ParseCSV parses comma-delimited score data with a required header row.
// Malformed rows are counted and skipped; bad field values default to 0 and
// are counted. Only a missing header or missing required columns fail the
// whole parse.
func ParseCSV(text string) ([]ScoreRow, Report, error) {
	log := zap.L().With(zap.String("component", "parser"))

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, Report{}, eris.Wrap(err, "parser: read header")
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return nil, Report{}, err
	}

	var (
		rows []ScoreRow
		rpt  Report
	)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rpt.RowErrors++
			// The reader skips blank lines on its own, so position
			// info has to come from it rather than a counter.
			var pe *csv.ParseError
			line := 0
			if errors.As(err, &pe) {
				line = pe.Line
			}
			log.Warn("skipping malformed row", zap.Int("line", line), zap.Error(err))
			continue
		}
		if blankRecord(record) {
			continue
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, buildRow(cols, record, line, &rpt, log))
	}

	if !rpt.Clean() {
		log.Info("parse completed with defects",
			zap.Int("rows", len(rows)),
			zap.Int("row_errors", rpt.RowErrors),
			zap.Int("bad_fields", rpt.BadFields),
		)
	}
	return rows, rpt, nil
}

// buildRow converts one record into a typed ScoreRow. Missing or
// unparseable numeric values default to 0; defaults from values that were
// actually present are tallied as bad fields.
func buildRow(cols columns, record []string, line int, rpt *Report, log *zap.Logger) ScoreRow {
	var row ScoreRow
	row.XGBoost, _ = floatField(cols.xgboost, record, line, "xgboost", rpt, log)
	row.NeuralNet, _ = floatField(cols.neuralNet, record, line, "neural_net", rpt, log)
	// A defaulted source difference must not feed the cross-check.
	row.SourceDifference, row.HasSource = floatField(cols.difference, record, line, "difference", rpt, log)

	if raw := field(cols.index, record); raw != "" {
		if idx, err := strconv.Atoi(raw); err == nil {
			row.Index = idx
			row.HasIndex = true
		} else {
			rpt.BadFields++
			log.Debug("non-integer row index, using position", zap.Int("line", line), zap.String("value", raw))
		}
	}
	return row
}

// field returns the trimmed value at position i, or "" when the column is
// absent or the record is short.
func field(i int, record []string) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// floatField parses the value at position i. The bool result is true only
// when a numeric value was actually present and parsed.
func floatField(i int, record []string, line int, name string, rpt *Report, log *zap.Logger) (float64, bool) {
	raw := field(i, record)
	if raw == "" {
		// An empty value that was actually present counts as a defect;
		// an absent column or a short row does not.
		if i >= 0 && i < len(record) {
			rpt.BadFields++
			log.Debug("empty numeric field, defaulting to 0", zap.Int("line", line), zap.String("field", name))
		}
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		rpt.BadFields++
		log.Debug("non-numeric field, defaulting to 0",
			zap.Int("line", line), zap.String("field", name), zap.String("value", raw))
		return 0, false
	}
	return v, true
}

func blankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
