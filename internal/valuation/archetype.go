package valuation

import (
	"sort"
	"strings"

	"github.com/ryabkov82/roster-merger/internal/join"
)

const (
	ThreeAndDWing      = "3&D Wing"
	PrimaryBallHandler = "Primary Ball Handler"
	StretchBig         = "Stretch Big"
	RimProtector       = "Rim Protector"
	ScoringGuard       = "Scoring Guard"
	RolePlayer         = "Versatile / Role Player"
)

// Archetype первое подходящее амплуа по позиции и статистике.
// Отсутствующая статистика правило не выполняет.
func Archetype(r join.Record) string {
	pos := strings.ToUpper(strings.TrimSpace(r.Get("Pos").String()))

	switch {
	case in(pos, "SG", "SF") && gt(r, "3P%", 0.36) && gt(r, "STL", 0.7):
		return ThreeAndDWing
	case in(pos, "PG") && gt(r, "AST", 4):
		return PrimaryBallHandler
	case in(pos, "PF", "C") && gt(r, "3P%", 0.33) && gt(r, "BLK", 0.5):
		return StretchBig
	case in(pos, "C") && gt(r, "BLK", 1.0) && gt(r, "TRB", 6):
		return RimProtector
	case in(pos, "SG", "PG") && gt(r, "PTS", 15) && lt(r, "AST", 4):
		return ScoringGuard
	}
	return RolePlayer
}

// Group игроки одного амплуа
type Group struct {
	Archetype string
	Players   []string
}

// Breakdown группирует игроков по амплуа: сначала самые многочисленные,
// при равенстве в порядке первого появления
func Breakdown(records []join.MergedRecord, nameColumn string) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, m := range records {
		a := m.Record.Get(ColArchetype).String()
		if a == "" {
			a = Archetype(m.Record)
		}
		i, ok := index[a]
		if !ok {
			i = len(groups)
			index[a] = i
			groups = append(groups, Group{Archetype: a})
		}
		groups[i].Players = append(groups[i].Players, m.Record.Get(nameColumn).String())
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i].Players) > len(groups[j].Players)
	})
	return groups
}

func in(pos string, options ...string) bool {
	for _, o := range options {
		if pos == o {
			return true
		}
	}
	return false
}

func gt(r join.Record, col string, limit float64) bool {
	v, ok := r.Get(col).Float()
	return ok && v > limit
}

func lt(r join.Record, col string, limit float64) bool {
	v, ok := r.Get(col).Float()
	return ok && v < limit
}
