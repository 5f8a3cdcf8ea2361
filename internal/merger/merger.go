package merger

import (
	"github.com/ryabkov82/roster-merger/internal/config"
	"github.com/ryabkov82/roster-merger/internal/join"
)

type Merger interface {
	Merge(cfg *config.Config) (*Result, error)
}

// Result итоги одного запуска
type Result struct {
	OutputFile      string
	StatsRows       int
	SalaryRows      int
	Matched         int
	UnmatchedStats  []string
	UnmatchedSalary []string
	Salary          join.Sum
}
