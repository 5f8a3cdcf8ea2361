package merger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ryabkov82/roster-merger/internal/config"
	"github.com/ryabkov82/roster-merger/internal/join"
	"github.com/ryabkov82/roster-merger/internal/sheet"
	"github.com/ryabkov82/roster-merger/internal/valuation"
	"go.uber.org/zap"
)

const (
	statsTable  = "stats"
	salaryTable = "salary"
)

// RosterMerger объединяет статистику и зарплаты одной команды в одну книгу
type RosterMerger struct {
	logger *zap.Logger
}

func NewRosterMerger(logger *zap.Logger) Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterMerger{logger: logger}
}

// Merge загружает обе таблицы, фильтрует состав, сопоставляет игроков и
// пишет отчёт. При любой фатальной ошибке файл результата не создаётся.
func (rm *RosterMerger) Merge(cfg *config.Config) (*Result, error) {
	stats, err := rm.load(cfg.StatsPath, statsTable, cfg.StatsHeaderRow)
	if err != nil {
		return nil, err
	}
	salary, err := rm.load(cfg.SalaryPath, salaryTable, cfg.SalaryHeaderRow)
	if err != nil {
		return nil, err
	}

	if err := checkSchema(cfg, stats, salary); err != nil {
		return nil, err
	}

	if cfg.Team != "" {
		if stats, err = join.FilterRows(stats, cfg.StatsTeamColumn, cfg.Team); err != nil {
			return nil, err
		}
		if salary, err = join.FilterRows(salary, cfg.SalaryTeamColumn, cfg.Team); err != nil {
			return nil, err
		}
		rm.logger.Info("Фильтр состава применён",
			zap.String("team", cfg.Team),
			zap.Int("stats_rows", len(stats.Records)),
			zap.Int("salary_rows", len(salary.Records)),
		)
	}

	n := cfg.Normalizer()
	res, err := join.Join(stats, salary, cfg.StatsKey, cfg.SalaryKey, join.Options{
		Normalizer: n,
		Conflict:   cfg.Conflict,
		Filter:     cfg.Roster.KeyFilter(n),
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сопоставления: %w", err)
	}

	unmatched := append(append([]join.UnmatchedRecord{}, res.UnmatchedA...), res.UnmatchedB...)
	for _, u := range unmatched {
		rm.logger.Warn("Игрок без пары",
			zap.String("table", u.Table),
			zap.String("name", u.Name),
			zap.String("key", string(u.Key)),
		)
	}

	sum := join.Aggregate(res.Merged, cfg.SalaryColumn)
	if sum.Skipped > 0 {
		rm.logger.Warn("Зарплата не указана",
			zap.String("column", cfg.SalaryColumn),
			zap.Int("skipped", sum.Skipped),
		)
	}

	columns := res.Columns
	var groups []valuation.Group
	if cfg.Valuation {
		valuation.Apply(res.Merged, cfg.SalaryColumn)
		columns = appendMissing(columns, valuation.Columns...)
		groups = valuation.Breakdown(res.Merged, cfg.StatsKey)
	}

	sortMerged(res.Merged, cfg.SortBy, cfg.SalaryColumn)

	report := sheet.Report{
		Columns:   columns,
		Rows:      make([]join.Record, 0, len(res.Merged)),
		Unmatched: unmatched,
	}
	for _, m := range res.Merged {
		report.Rows = append(report.Rows, m.Record)
	}

	result := &Result{
		OutputFile:      cfg.OutputPath,
		StatsRows:       len(stats.Records),
		SalaryRows:      len(salary.Records),
		Matched:         len(res.Merged),
		UnmatchedStats:  names(res.UnmatchedA),
		UnmatchedSalary: names(res.UnmatchedB),
		Salary:          sum,
	}
	report.Summary = summary(cfg, result, groups)

	if err := sheet.Write(cfg.OutputPath, report); err != nil {
		return nil, err
	}

	rm.logger.Info("Отчёт сохранён",
		zap.String("path", cfg.OutputPath),
		zap.Int("matched", result.Matched),
		zap.Int("unmatched_stats", len(result.UnmatchedStats)),
		zap.Int("unmatched_salary", len(result.UnmatchedSalary)),
		zap.Float64("salary_total", sum.Total),
	)

	return result, nil
}

func (rm *RosterMerger) load(path, name string, headerRow int) (join.Table, error) {
	t, err := sheet.Load(path, sheet.LoadOptions{Name: name, HeaderRow: headerRow})
	if err != nil {
		return join.Table{}, err
	}
	rm.logger.Info("Таблица загружена",
		zap.String("table", name),
		zap.String("path", path),
		zap.Int("columns", len(t.Columns)),
		zap.Int("rows", len(t.Records)),
	)
	return t, nil
}

// checkSchema проверяет все нужные колонки до начала работы
func checkSchema(cfg *config.Config, stats, salary join.Table) error {
	required := []struct {
		table  join.Table
		column string
		needed bool
	}{
		{stats, cfg.StatsKey, true},
		{salary, cfg.SalaryKey, true},
		{salary, cfg.SalaryColumn, true},
		{stats, cfg.StatsTeamColumn, cfg.Team != ""},
		{salary, cfg.SalaryTeamColumn, cfg.Team != ""},
	}
	for _, r := range required {
		if r.needed && !r.table.HasColumn(r.column) {
			return &join.SchemaError{Table: r.table.Name, Column: r.column}
		}
	}
	return nil
}

// sortMerged стабильная сортировка по убыванию; пустые значения в конце
func sortMerged(records []join.MergedRecord, sortBy, salaryColumn string) {
	var column string
	switch sortBy {
	case config.SortSalary:
		column = salaryColumn
	case config.SortValue:
		column = valuation.ColPerMillion
	default:
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, okA := records[i].Record.Get(column).Float()
		b, okB := records[j].Record.Get(column).Float()
		if okA != okB {
			return okA
		}
		return okA && a > b
	})
}

func summary(cfg *config.Config, r *Result, groups []valuation.Group) []sheet.SummaryRow {
	rows := []sheet.SummaryRow{
		{Label: "Team", Values: []join.Value{join.Text(cfg.Team)}},
		{Label: "Stats rows", Values: []join.Value{join.Number(float64(r.StatsRows))}},
		{Label: "Salary rows", Values: []join.Value{join.Number(float64(r.SalaryRows))}},
		{Label: "Matched", Values: []join.Value{join.Number(float64(r.Matched))}},
		{Label: "Unmatched (stats)", Values: []join.Value{join.Number(float64(len(r.UnmatchedStats)))}},
		{Label: "Unmatched (salary)", Values: []join.Value{join.Number(float64(len(r.UnmatchedSalary)))}},
		{Label: "Salary total", Values: []join.Value{join.Number(r.Salary.Total)}},
		{Label: "Salary counted", Values: []join.Value{join.Number(float64(r.Salary.Counted))}},
		{Label: "Salary skipped", Values: []join.Value{join.Number(float64(r.Salary.Skipped))}},
	}
	if len(groups) > 0 {
		rows = append(rows, sheet.SummaryRow{}, sheet.SummaryRow{
			Label:  "Archetype",
			Values: []join.Value{join.Text("Player Count"), join.Text("Players")},
		})
		for _, g := range groups {
			rows = append(rows, sheet.SummaryRow{
				Label: g.Archetype,
				Values: []join.Value{
					join.Number(float64(len(g.Players))),
					join.Text(strings.Join(g.Players, ", ")),
				},
			})
		}
	}
	return rows
}

func appendMissing(columns []string, extra ...string) []string {
	out := append([]string{}, columns...)
	for _, c := range extra {
		found := false
		for _, existing := range out {
			if existing == c {
				found = true
				break
			}
		}
		if !found {
			out = append(out, c)
		}
	}
	return out
}

func names(records []join.UnmatchedRecord) []string {
	out := make([]string, 0, len(records))
	for _, u := range records {
		out = append(out, u.Name)
	}
	return out
}
