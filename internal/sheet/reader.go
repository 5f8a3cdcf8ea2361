package sheet

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ryabkov82/roster-merger/internal/join"
	"github.com/xuri/excelize/v2"
)

type LoadOptions struct {
	// Name имя таблицы для сообщений об ошибках, по умолчанию имя файла
	Name string
	// Sheet лист книги, по умолчанию первый
	Sheet string
	// HeaderRow номер строки заголовков, с 1
	HeaderRow int
}

// Load читает лист книги в таблицу. Строки до заголовка и полностью пустые
// строки пропускаются.
func Load(path string, opts LoadOptions) (join.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return join.Table{}, &IOError{Op: "открытия", Path: path, Err: err}
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheetList := f.GetSheetList()
		if len(sheetList) == 0 {
			return join.Table{}, &IOError{Op: "чтения", Path: path, Err: ErrNoSheets}
		}
		sheet = sheetList[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return join.Table{}, &IOError{Op: "чтения", Path: path, Err: fmt.Errorf("лист %q не найден", sheet)}
	}

	headerRow := opts.HeaderRow
	if headerRow < 1 {
		headerRow = 1
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(path)
	}
	table := join.Table{Name: name}

	rows, err := f.Rows(sheet)
	if err != nil {
		return join.Table{}, &IOError{Op: "чтения", Path: path, Err: err}
	}
	defer rows.Close()

	rowInFile := 0
	for rows.Next() {
		rowInFile++
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return join.Table{}, &IOError{Op: "чтения", Path: path, Err: fmt.Errorf("строка %d: %w", rowInFile, err)}
		}
		if rowInFile < headerRow {
			continue
		}
		if rowInFile == headerRow {
			table.Columns = makeHeaders(cols)
			continue
		}
		if isBlankRow(cols) {
			continue
		}

		record := join.NewRecord()
		for i, h := range table.Columns {
			raw := ""
			if i < len(cols) {
				raw = cols[i]
			}
			cellRef, _ := excelize.CoordinatesToCellName(i+1, rowInFile)
			record.Set(h, cellValue(f, sheet, cellRef, raw))
		}
		table.Records = append(table.Records, record)
	}
	if err := rows.Error(); err != nil {
		return join.Table{}, &IOError{Op: "чтения", Path: path, Err: err}
	}

	if table.Columns == nil {
		return join.Table{}, &IOError{Op: "чтения", Path: path, Err: fmt.Errorf("%w (строка %d)", ErrNoHeader, headerRow)}
	}

	return table, nil
}

// cellValue определяет тип значения по типу ячейки, как это делает Excel:
// строки остаются строками, числа и формулы разбираются как числа
func cellValue(f *excelize.File, sheet, cellRef, raw string) join.Value {
	if strings.TrimSpace(raw) == "" {
		return join.Empty()
	}

	valType, _ := f.GetCellType(sheet, cellRef)
	switch valType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeDate, excelize.CellTypeError:
		return join.Text(raw)
	case excelize.CellTypeBool:
		if raw == "1" || strings.ToLower(raw) == "true" {
			return join.Text("TRUE")
		}
		return join.Text("FALSE")
	}

	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return join.Number(n)
	}
	return join.Text(raw)
}

// makeHeaders пустые заголовки получают имя колонки, повторы нумеруются
func makeHeaders(cols []string) []string {
	last := len(cols)
	for last > 0 && strings.TrimSpace(cols[last-1]) == "" {
		last--
	}

	headers := make([]string, 0, last)
	seen := make(map[string]int, last)
	for i := 0; i < last; i++ {
		h := strings.TrimSpace(cols[i])
		if h == "" {
			h, _ = excelize.ColumnNumberToName(i + 1)
		}
		seen[h]++
		if n := seen[h]; n > 1 {
			h = fmt.Sprintf("%s (%d)", h, n)
		}
		headers = append(headers, h)
	}
	return headers
}

func isBlankRow(cols []string) bool {
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
