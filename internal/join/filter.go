package join

import "strings"

// FilterRows оставляет строки, у которых значение колонки совпадает с value
// (без учёта регистра и крайних пробелов). Пустой value фильтр отключает.
func FilterRows(t Table, column, value string) (Table, error) {
	if err := t.requireColumn(column); err != nil {
		return Table{}, err
	}
	value = strings.TrimSpace(value)
	out := Table{Name: t.Name, Columns: t.Columns}
	for _, r := range t.Records {
		if value == "" || strings.EqualFold(strings.TrimSpace(r.Get(column).String()), value) {
			out.Records = append(out.Records, r)
		}
	}
	return out, nil
}

// KeyFilter ограничивает набор игроков по каноническим ключам.
// Исключение сильнее включения; пустой Include пропускает всех.
type KeyFilter struct {
	Include map[Key]struct{}
	Exclude map[Key]struct{}
}

// NewKeyFilter строит фильтр из сырых имён
func NewKeyFilter(n Normalizer, include, exclude []string) *KeyFilter {
	f := &KeyFilter{
		Include: make(map[Key]struct{}),
		Exclude: make(map[Key]struct{}),
	}
	for _, name := range include {
		if k := n.Key(name); k != "" {
			f.Include[k] = struct{}{}
		}
	}
	for _, name := range exclude {
		if k := n.Key(name); k != "" {
			f.Exclude[k] = struct{}{}
		}
	}
	return f
}

func (f *KeyFilter) Allows(k Key) bool {
	if f == nil {
		return true
	}
	if _, ok := f.Exclude[k]; ok {
		return false
	}
	if len(f.Include) == 0 {
		return true
	}
	_, ok := f.Include[k]
	return ok
}

// FilterKeys применяет KeyFilter к таблице по колонке с именем
func FilterKeys(t Table, keyColumn string, f *KeyFilter, n Normalizer) (Table, error) {
	if err := t.requireColumn(keyColumn); err != nil {
		return Table{}, err
	}
	out := Table{Name: t.Name, Columns: t.Columns}
	for _, r := range t.Records {
		if f.Allows(n.Key(r.Get(keyColumn).String())) {
			out.Records = append(out.Records, r)
		}
	}
	return out, nil
}
