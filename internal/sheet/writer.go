package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ryabkov82/roster-merger/internal/join"
	"github.com/xuri/excelize/v2"
)

const (
	SheetMerged    = "merged"
	SheetUnmatched = "unmatched"
	SheetSummary   = "summary"

	maxDecimals = 4
)

var unmatchedHeaders = []string{"Source", "Name", "Key"}

// SummaryRow строка листа summary: подпись и значения в следующих колонках
type SummaryRow struct {
	Label  string
	Values []join.Value
}

type Report struct {
	Columns   []string
	Rows      []join.Record
	Unmatched []join.UnmatchedRecord
	Summary   []SummaryRow
}

type writer struct {
	file        *excelize.File
	headerStyle int
	// стиль числа по количеству знаков после запятой
	styleCache map[int]int
}

// Write сохраняет отчёт в книгу с листами merged, unmatched и summary.
// Файл сначала пишется во временный и переименовывается, так что при ошибке
// результат не остаётся недописанным.
func Write(path string, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	w := &writer{file: f, styleCache: make(map[int]int)}
	if err := w.build(report); err != nil {
		return &IOError{Op: "записи", Path: path, Err: err}
	}
	if err := save(f, path); err != nil {
		return &IOError{Op: "записи", Path: path, Err: err}
	}
	return nil
}

func (w *writer) build(report Report) error {
	var err error
	w.headerStyle, err = w.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#8EA9DB", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля заголовка: %w", err)
	}

	defaultSheet := w.file.GetSheetName(0)
	if err := w.file.SetSheetName(defaultSheet, SheetMerged); err != nil {
		return fmt.Errorf("ошибка переименования листа: %w", err)
	}
	for _, name := range []string{SheetUnmatched, SheetSummary} {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("ошибка создания листа %s: %w", name, err)
		}
	}

	merged := make([][]join.Value, 0, len(report.Rows))
	for _, r := range report.Rows {
		row := make([]join.Value, len(report.Columns))
		for i, col := range report.Columns {
			row[i] = r.Get(col)
		}
		merged = append(merged, row)
	}
	if err := w.writeTable(SheetMerged, report.Columns, merged); err != nil {
		return err
	}

	unmatched := make([][]join.Value, 0, len(report.Unmatched))
	for _, u := range report.Unmatched {
		unmatched = append(unmatched, []join.Value{
			join.Text(u.Table),
			join.Text(u.Name),
			join.Text(string(u.Key)),
		})
	}
	if err := w.writeTable(SheetUnmatched, unmatchedHeaders, unmatched); err != nil {
		return err
	}

	summary := make([][]join.Value, 0, len(report.Summary))
	for _, s := range report.Summary {
		row := append([]join.Value{join.Text(s.Label)}, s.Values...)
		summary = append(summary, row)
	}
	return w.writeTable(SheetSummary, nil, summary)
}

// writeTable пишет лист потоково: ширины колонок, затем заголовок и строки.
// Заголовок пишется и при пустом наборе строк.
func (w *writer) writeTable(sheet string, headers []string, rows [][]join.Value) error {
	l := newLayout(headers)
	for _, row := range rows {
		l.observeRow(row)
	}

	sw, err := w.file.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("ошибка создания StreamWriter: %w", err)
	}

	cols := len(headers)
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	for col := 1; col <= cols; col++ {
		if err := sw.SetColWidth(col, col, l.width(col-1)); err != nil {
			return fmt.Errorf("ошибка установки ширины колонки: %w", err)
		}
	}

	rowCounter := 1
	if len(headers) > 0 {
		if err := sw.SetPanes(&excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("ошибка закрепления заголовка: %w", err)
		}

		headerRow := make([]interface{}, len(headers))
		for i, h := range headers {
			headerRow[i] = excelize.Cell{Value: h, StyleID: w.headerStyle}
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowCounter)
		if err := sw.SetRow(cell, headerRow); err != nil {
			return fmt.Errorf("ошибка записи заголовков: %w", err)
		}
		rowCounter++
	}

	for _, row := range rows {
		rowData := make([]interface{}, len(row))
		for i, v := range row {
			cellData, err := w.cell(v)
			if err != nil {
				return err
			}
			rowData[i] = cellData
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowCounter)
		if err := sw.SetRow(cell, rowData); err != nil {
			return fmt.Errorf("ошибка записи строки %d листа %s: %w", rowCounter, sheet, err)
		}
		rowCounter++
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("ошибка финального flush: %w", err)
	}
	return nil
}

func (w *writer) cell(v join.Value) (interface{}, error) {
	switch v.Kind() {
	case join.KindNumber:
		n, _ := v.Float()
		styleID, err := w.numberStyle(decimals(n))
		if err != nil {
			return nil, err
		}
		return excelize.Cell{Value: n, StyleID: styleID}, nil
	case join.KindText:
		return v.String(), nil
	}
	return nil, nil
}

func (w *writer) numberStyle(dec int) (int, error) {
	if styleID, ok := w.styleCache[dec]; ok {
		return styleID, nil
	}
	style := &excelize.Style{NumFmt: 3}
	if dec > 0 {
		numFmt := "#,##0." + strings.Repeat("0", dec)
		style = &excelize.Style{CustomNumFmt: &numFmt}
	}
	styleID, err := w.file.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания числового стиля: %w", err)
	}
	w.styleCache[dec] = styleID
	return styleID, nil
}

// decimals количество знаков после запятой, не больше maxDecimals
func decimals(n float64) int {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return 0
	}
	if len(parts[1]) > maxDecimals {
		return maxDecimals
	}
	return len(parts[1])
}

func save(f *excelize.File, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".roster-*.xlsx")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := f.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
