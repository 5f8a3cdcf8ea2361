package merger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ryabkov82/roster-merger/internal/config"
	"github.com/ryabkov82/roster-merger/internal/join"
	"github.com/ryabkov82/roster-merger/internal/sheet"
	"github.com/ryabkov82/roster-merger/internal/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func fixture(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	statsPath := filepath.Join(dir, "stats.xlsx")
	writeWorkbook(t, statsPath, [][]interface{}{
		{"Player", "Pos", "Team", "PTS", "AST", "TRB", "STL", "BLK", "TOV", "FG%", "3P%", "FT%"},
		{"Nikola Jović", "PF", "MIA", 10.7, 2.3, 4.0, 0.6, 0.3, 1.2, 0.468, 0.373, 0.762},
		{"Jimmy Butler", "SF", "MIA", 19.0, 4.8, 5.4, 1.4, 0.3, 1.5, 0.54, 0.25, 0.81},
		{"Bam Adebayo", "C", "MIA", 18.1, 4.3, 9.6, 1.2, 0.6, 2.2, 0.481, 0.357, 0.79},
		{"Stephen Curry", "PG", "GSW", 24.5, 6.0, 4.4, 1.1, 0.4, 3.0, 0.448, 0.397, 0.933},
	})

	salaryPath := filepath.Join(dir, "salary.xlsx")
	writeWorkbook(t, salaryPath, [][]interface{}{
		{"NBA player salaries"},
		{"Rk", "Player", "Tm", "2024-25"},
		{1, "Stephen Curry", "GSW", 55761216},
		{2, "Bam Adebayo", "MIA", 34848340},
		{3, "Nikola Jovic", "MIA", 2463960},
		{4, "Kevin Love", "MIA", 3850000},
	})

	return &config.Config{
		StatsPath:        statsPath,
		SalaryPath:       salaryPath,
		OutputPath:       filepath.Join(dir, "out", "roster.xlsx"),
		Team:             "MIA",
		StatsKey:         "Player",
		SalaryKey:        "Player",
		StatsTeamColumn:  "Team",
		SalaryTeamColumn: "Tm",
		SalaryColumn:     "2024-25",
		StatsHeaderRow:   1,
		SalaryHeaderRow:  2,
		Conflict:         join.ConflictLastWins,
		SortBy:           config.SortNone,
		Valuation:        true,
	}
}

func TestMerge(t *testing.T) {
	cfg := fixture(t)
	core, logs := observer.New(zap.InfoLevel)

	res, err := NewRosterMerger(zap.New(core)).Merge(cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.OutputPath, res.OutputFile)
	assert.Equal(t, 3, res.StatsRows)
	assert.Equal(t, 3, res.SalaryRows)
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, []string{"Jimmy Butler"}, res.UnmatchedStats)
	assert.Equal(t, []string{"Kevin Love"}, res.UnmatchedSalary)
	assert.Equal(t, 37312300.0, res.Salary.Total)
	assert.Equal(t, 0, res.Salary.Skipped)
	assert.Equal(t, 2, logs.FilterMessage("Игрок без пары").Len())

	merged, err := sheet.Load(cfg.OutputPath, sheet.LoadOptions{Sheet: sheet.SheetMerged})
	require.NoError(t, err)
	require.Len(t, merged.Records, 2)
	assert.Equal(t, "Nikola Jović", merged.Records[0].Get("Player").String())
	assert.Equal(t, "Bam Adebayo", merged.Records[1].Get("Player").String())
	assert.Contains(t, merged.Columns, "2024-25")
	assert.Contains(t, merged.Columns, "Rk")
	assert.Contains(t, merged.Columns, valuation.ColArchetype)

	unmatched, err := sheet.Load(cfg.OutputPath, sheet.LoadOptions{Sheet: sheet.SheetUnmatched})
	require.NoError(t, err)
	require.Len(t, unmatched.Records, 2)
	assert.Equal(t, "stats", unmatched.Records[0].Get("Source").String())
	assert.Equal(t, "salary", unmatched.Records[1].Get("Source").String())
}

func TestMergeSortBySalary(t *testing.T) {
	cfg := fixture(t)
	cfg.SortBy = config.SortSalary

	_, err := NewRosterMerger(nil).Merge(cfg)
	require.NoError(t, err)

	merged, err := sheet.Load(cfg.OutputPath, sheet.LoadOptions{Sheet: sheet.SheetMerged})
	require.NoError(t, err)
	require.Len(t, merged.Records, 2)
	assert.Equal(t, "Bam Adebayo", merged.Records[0].Get("Player").String())
}

func TestMergeRosterExclude(t *testing.T) {
	cfg := fixture(t)
	cfg.Roster = &config.Roster{Exclude: []string{"JIMMY BÜTLER", "Kevin Love"}}
	cfg.Valuation = false

	res, err := NewRosterMerger(nil).Merge(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)
	assert.Empty(t, res.UnmatchedStats)
	assert.Empty(t, res.UnmatchedSalary)

	merged, err := sheet.Load(cfg.OutputPath, sheet.LoadOptions{Sheet: sheet.SheetMerged})
	require.NoError(t, err)
	assert.NotContains(t, merged.Columns, valuation.ColScore)
}

func TestMergeWithoutTeamKeepsEveryone(t *testing.T) {
	cfg := fixture(t)
	cfg.Team = ""

	res, err := NewRosterMerger(nil).Merge(cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 4, res.StatsRows)
}

func TestMergeSchemaErrorWritesNothing(t *testing.T) {
	cfg := fixture(t)
	cfg.SalaryColumn = "2025-26"

	_, err := NewRosterMerger(nil).Merge(cfg)
	var schemaErr *join.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "salary", schemaErr.Table)
	assert.Equal(t, "2025-26", schemaErr.Column)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMergeMissingInput(t *testing.T) {
	cfg := fixture(t)
	cfg.StatsPath = filepath.Join(t.TempDir(), "nope.xlsx")

	_, err := NewRosterMerger(nil).Merge(cfg)
	var ioErr *sheet.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, cfg.StatsPath, ioErr.Path)
}
