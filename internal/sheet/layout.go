package sheet

import (
	"unicode/utf8"

	"github.com/ryabkov82/roster-merger/internal/join"
)

const (
	minColWidth = 8
	maxColWidth = 60
)

// layout заголовки листа и ширина колонок по содержимому
type layout struct {
	Headers      []string
	MaxColWidths map[int]int
}

func newLayout(headers []string) *layout {
	l := &layout{
		Headers:      headers,
		MaxColWidths: make(map[int]int),
	}
	for i, h := range headers {
		l.observe(i, h)
	}
	return l
}

// observe учитывает значение при расчёте ширины колонки
func (l *layout) observe(col int, text string) {
	l.grow(col, utf8.RuneCountInString(text)+2)
}

func (l *layout) grow(col, w int) {
	if w > l.MaxColWidths[col] {
		l.MaxColWidths[col] = w
	}
}

func (l *layout) observeRow(values []join.Value) {
	for i, v := range values {
		w := utf8.RuneCountInString(v.String()) + 2
		// числа выводятся с разделителями тысяч
		if v.Kind() == join.KindNumber {
			w += w / 3
		}
		l.grow(i, w)
	}
}

func (l *layout) width(col int) float64 {
	w := l.MaxColWidths[col]
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return float64(w)
}
