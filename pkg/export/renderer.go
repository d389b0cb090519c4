package export

import (
	"bytes"
	"encoding/csv"

	"github.com/xuri/excelize/v2"
)

// maxColumnWidth caps spreadsheet column auto-sizing.
const maxColumnWidth = 50

// Renderer turns a header row plus data rows into one export format.
type Renderer interface {
	// ContentType returns the MIME type of the rendered output.
	ContentType() string
	// Extension returns the file name extension, including the dot.
	Extension() string
	// Render builds the complete output buffer in memory.
	Render(sheet, fill string, headers []string, rows [][]string) ([]byte, error)
}

// workbookRenderer renders a styled spreadsheet workbook: bold white
// header text on the kind's accent fill, columns auto-sized to the
// longest rendered value.
type workbookRenderer struct{}

func (workbookRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (workbookRenderer) Extension() string { return ".xlsx" }

func (workbookRenderer) Render(sheet, fill string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
	})
	if err != nil {
		return nil, err
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		widths[i] = len(header)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
			if colIdx < len(widths) && len(value) > widths[colIdx] {
				widths[colIdx] = len(value)
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		adjusted := width + 2
		if adjusted > maxColumnWidth {
			adjusted = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(adjusted)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// csvRenderer is the degraded rendering mode: the same columns in the
// same order, without styling.
type csvRenderer struct{}

func (csvRenderer) ContentType() string { return "text/csv" }

func (csvRenderer) Extension() string { return ".csv" }

func (csvRenderer) Render(_, _ string, headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
