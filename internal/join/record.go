package join

import (
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
)

// Value ячейка таблицы: пусто, строка или число
type Value struct {
	kind Kind
	text string
	num  float64
}

func Empty() Value { return Value{} }

func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty || (v.kind == KindText && strings.TrimSpace(v.text) == "")
}

// String возвращает значение в текстовом виде (пустая строка для пустых ячеек)
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return ""
}

// Float возвращает числовое значение. Текст разбирается как число,
// false для пустых и нечисловых значений.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindText:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Record строка таблицы: упорядоченное отображение колонка -> значение
type Record struct {
	columns []string
	values  map[string]Value
}

func NewRecord() Record {
	return Record{values: make(map[string]Value)}
}

// RecordOf собирает запись из пар колонка/значение в заданном порядке
func RecordOf(pairs ...any) Record {
	r := NewRecord()
	for i := 0; i+1 < len(pairs); i += 2 {
		col, _ := pairs[i].(string)
		r.Set(col, toValue(pairs[i+1]))
	}
	return r
}

func toValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Empty()
	case string:
		return Text(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case float64:
		return Number(t)
	}
	return Empty()
}

func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

func (r Record) Get(col string) Value {
	return r.values[col]
}

func (r Record) Has(col string) bool {
	_, ok := r.values[col]
	return ok
}

func (r *Record) Set(col string, v Value) {
	if r.values == nil {
		r.values = make(map[string]Value)
	}
	if _, ok := r.values[col]; !ok {
		r.columns = append(r.columns, col)
	}
	r.values[col] = v
}

func (r Record) Len() int { return len(r.columns) }

func (r Record) Clone() Record {
	out := Record{
		columns: make([]string, len(r.columns)),
		values:  make(map[string]Value, len(r.values)),
	}
	copy(out.columns, r.columns)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}

// Table набор записей с объявленной схемой колонок
type Table struct {
	Name    string
	Columns []string
	Records []Record
}

func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// requireColumn проверяет наличие колонки в схеме
func (t Table) requireColumn(col string) error {
	if !t.HasColumn(col) {
		return &SchemaError{Table: t.Name, Column: col}
	}
	return nil
}
