package join

// Sum итог по числовой колонке. Skipped строки без числового значения.
type Sum struct {
	Total   float64
	Counted int
	Skipped int
}

func Aggregate(records []MergedRecord, column string) Sum {
	var s Sum
	for _, m := range records {
		v, ok := m.Record.Get(column).Float()
		if !ok {
			s.Skipped++
			continue
		}
		s.Total += v
		s.Counted++
	}
	return s
}
