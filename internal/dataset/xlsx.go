package dataset

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
)

// ParseXLSX parses score data from the first sheet of an xlsx workbook.
// The row contract is identical to ParseCSV: header row required, the two
// AUROC columns required, everything else best-effort.
func ParseXLSX(data []byte) ([]ScoreRow, Report, error) {
	log := zap.L().With(zap.String("component", "parser"))

	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, Report{}, eris.Wrap(err, "parser: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, Report{}, eris.New("parser: xlsx has no sheets")
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, Report{}, eris.New("parser: xlsx sheet has no header row")
	}

	cols, err := resolveColumns(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, Report{}, err
	}

	var (
		rows []ScoreRow
		rpt  Report
	)
	for i, r := range sheet.Rows[1:] {
		record := rowToStrings(r)
		if blankRecord(record) {
			continue
		}
		rows = append(rows, buildRow(cols, record, i+2, &rpt, log))
	}

	if !rpt.Clean() {
		log.Info("parse completed with defects",
			zap.Int("rows", len(rows)),
			zap.Int("bad_fields", rpt.BadFields),
		)
	}
	return rows, rpt, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
