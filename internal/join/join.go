package join

import (
	"fmt"
	"strings"
)

// Conflict политика для повторяющихся ключей в таблице B
type Conflict string

const (
	ConflictLastWins  Conflict = "last-wins"
	ConflictFirstWins Conflict = "first-wins"
	ConflictSum       Conflict = "sum"
	ConflictReject    Conflict = "reject"
)

func ParseConflict(s string) (Conflict, error) {
	switch c := Conflict(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ConflictLastWins, nil
	case ConflictLastWins, ConflictFirstWins, ConflictSum, ConflictReject:
		return c, nil
	}
	return "", fmt.Errorf("неизвестная политика конфликтов %q", s)
}

type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

type MergedRecord struct {
	Key    Key
	Record Record
}

// UnmatchedRecord строка без пары в другой таблице
type UnmatchedRecord struct {
	Side   Side
	Table  string
	Key    Key
	Name   string
	Record Record
}

type Options struct {
	Normalizer Normalizer
	Conflict   Conflict
	Filter     *KeyFilter
}

type Result struct {
	Columns    []string
	Merged     []MergedRecord
	UnmatchedA []UnmatchedRecord
	UnmatchedB []UnmatchedRecord
}

type indexed struct {
	record Record
	used   bool
}

// Join сопоставляет записи a и b по каноническому ключу. Порядок объединённых
// записей совпадает с порядком a; при совпадении колонок побеждает a.
func Join(a, b Table, keyA, keyB string, opts Options) (*Result, error) {
	if err := a.requireColumn(keyA); err != nil {
		return nil, err
	}
	if err := b.requireColumn(keyB); err != nil {
		return nil, err
	}
	conflict := opts.Conflict
	if conflict == "" {
		conflict = ConflictLastWins
	}
	n := opts.Normalizer

	index := make(map[Key]*indexed, len(b.Records))
	// порядок первых вхождений B для отчёта о непарных
	var orderB []Key
	var emptyB []Record

	for _, r := range b.Records {
		k := n.Key(r.Get(keyB).String())
		if !opts.Filter.Allows(k) {
			continue
		}
		if k == "" {
			emptyB = append(emptyB, r)
			continue
		}
		prev, ok := index[k]
		if !ok {
			index[k] = &indexed{record: r}
			orderB = append(orderB, k)
			continue
		}
		switch conflict {
		case ConflictFirstWins:
		case ConflictLastWins:
			prev.record = r
		case ConflictSum:
			prev.record = sumRecords(prev.record, r)
		case ConflictReject:
			return nil, &DuplicateKeyError{Table: b.Name, Key: k}
		}
	}

	res := &Result{Columns: mergeColumns(a.Columns, b.Columns)}

	for _, r := range a.Records {
		name := r.Get(keyA).String()
		k := n.Key(name)
		if !opts.Filter.Allows(k) {
			continue
		}
		if k != "" {
			if hit, ok := index[k]; ok {
				hit.used = true
				res.Merged = append(res.Merged, MergedRecord{Key: k, Record: mergeRecords(r, hit.record)})
				continue
			}
		}
		res.UnmatchedA = append(res.UnmatchedA, UnmatchedRecord{
			Side:   SideA,
			Table:  a.Name,
			Key:    k,
			Name:   n.Display(name),
			Record: r,
		})
	}

	for _, k := range orderB {
		hit := index[k]
		if hit.used {
			continue
		}
		res.UnmatchedB = append(res.UnmatchedB, UnmatchedRecord{
			Side:   SideB,
			Table:  b.Name,
			Key:    k,
			Name:   n.Display(hit.record.Get(keyB).String()),
			Record: hit.record,
		})
	}
	for _, r := range emptyB {
		res.UnmatchedB = append(res.UnmatchedB, UnmatchedRecord{
			Side:   SideB,
			Table:  b.Name,
			Name:   n.Display(r.Get(keyB).String()),
			Record: r,
		})
	}
	return res, nil
}

func mergeColumns(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, cols := range [][]string{a, b} {
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func mergeRecords(a, b Record) Record {
	out := a.Clone()
	for _, col := range b.columns {
		if !out.Has(col) {
			out.Set(col, b.values[col])
		}
	}
	return out
}

// sumRecords складывает числовые поля, для остальных оставляет первое непустое
func sumRecords(prev, next Record) Record {
	out := prev.Clone()
	for _, col := range next.columns {
		nv := next.values[col]
		pv, ok := out.values[col]
		switch {
		case !ok || pv.IsEmpty():
			out.Set(col, nv)
		case pv.Kind() == KindNumber && nv.Kind() == KindNumber:
			out.Set(col, Number(pv.num+nv.num))
		}
	}
	return out
}
