package valuation

import (
	"math"

	"github.com/ryabkov82/roster-merger/internal/join"
)

const (
	ColScore      = "Value Score"
	ColPerMillion = "Value per $M"
	ColArchetype  = "Archetype"
)

// Columns добавляемые Apply колонки в порядке вывода
var Columns = []string{ColScore, ColPerMillion, ColArchetype}

// Weights веса статистики в базовой оценке игрока
type Weights struct {
	Points    float64
	Assists   float64
	Rebounds  float64
	Steals    float64
	Blocks    float64
	Turnovers float64
}

var DefaultWeights = Weights{
	Points:    1,
	Assists:   1.5,
	Rebounds:  1.2,
	Steals:    2,
	Blocks:    2,
	Turnovers: 1,
}

// Score оценка игрока: взвешенная сумма статистики, умноженная на среднюю
// точность бросков. Без процентов точность считается нулевой, без любой из
// основных статистик оценки нет.
func Score(r join.Record) (float64, bool) {
	return DefaultWeights.Score(r)
}

func (w Weights) Score(r join.Record) (float64, bool) {
	pts, ok1 := stat(r, "PTS")
	ast, ok2 := stat(r, "AST")
	trb, ok3 := stat(r, "TRB")
	stl, ok4 := stat(r, "STL")
	blk, ok5 := stat(r, "BLK")
	tov, ok6 := stat(r, "TOV")
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6) {
		return 0, false
	}

	efficiency := 0.0
	fg, okFG := stat(r, "FG%")
	three, ok3P := stat(r, "3P%")
	ft, okFT := stat(r, "FT%")
	if okFG && ok3P && okFT {
		efficiency = (fg + three + ft) / 3
	}

	base := w.Points*pts + w.Assists*ast + w.Rebounds*trb +
		w.Steals*stl + w.Blocks*blk - w.Turnovers*tov
	return base * efficiency, true
}

// PerMillion оценка на миллион зарплаты; не определена при пустой или нулевой зарплате
func PerMillion(score float64, salary join.Value) (float64, bool) {
	s, ok := salary.Float()
	if !ok || s == 0 {
		return 0, false
	}
	v := score / (s / 1e6)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Apply дописывает к записям оценку, оценку на миллион и архетип
func Apply(records []join.MergedRecord, salaryColumn string) {
	for i := range records {
		r := &records[i].Record
		score, ok := Score(*r)
		if !ok {
			r.Set(ColScore, join.Empty())
			r.Set(ColPerMillion, join.Empty())
		} else {
			r.Set(ColScore, join.Number(round(score)))
			if per, ok := PerMillion(score, r.Get(salaryColumn)); ok {
				r.Set(ColPerMillion, join.Number(round(per)))
			} else {
				r.Set(ColPerMillion, join.Empty())
			}
		}
		r.Set(ColArchetype, join.Text(Archetype(*r)))
	}
}

func stat(r join.Record, col string) (float64, bool) {
	return r.Get(col).Float()
}

func round(v float64) float64 {
	return math.Round(v*1000) / 1000
}
