package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ryabkov82/roster-merger/internal/config"
	"github.com/ryabkov82/roster-merger/internal/logger"
	"github.com/ryabkov82/roster-merger/internal/merger"
	"go.uber.org/zap"
)

type Output struct {
	Success         bool     `json:"success"`
	OutputFile      string   `json:"output_file,omitempty"`
	Error           string   `json:"error,omitempty"`
	Duration        string   `json:"duration"`
	Matched         int      `json:"matched"`
	UnmatchedStats  []string `json:"unmatched_stats"`
	UnmatchedSalary []string `json:"unmatched_salary"`
	SalaryTotal     float64  `json:"salary_total"`
	SalarySkipped   int      `json:"salary_skipped"`
}

func main() {

	start := time.Now()

	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		fail(start, fmt.Sprintf("Ошибка конфигурации: %v", err))
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fail(start, fmt.Sprintf("Ошибка создания логгера: %v", err))
	}
	defer func() { _ = zl.Sync() }()

	m := merger.NewRosterMerger(zl)
	res, err := m.Merge(cfg)
	if err != nil {
		zl.Error("Ошибка объединения", zap.Error(err))
		_ = zl.Sync()
		fail(start, fmt.Sprintf("Ошибка объединения: %v", err))
	}

	emitJSON(Output{
		Success:         true,
		OutputFile:      res.OutputFile,
		Duration:        time.Since(start).String(),
		Matched:         res.Matched,
		UnmatchedStats:  res.UnmatchedStats,
		UnmatchedSalary: res.UnmatchedSalary,
		SalaryTotal:     res.Salary.Total,
		SalarySkipped:   res.Salary.Skipped,
	})

}

func fail(start time.Time, msg string) {
	emitJSON(Output{
		Success:  false,
		Error:    msg,
		Duration: time.Since(start).String(),
	})
	os.Exit(1)
}

func emitJSON(out Output) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Ошибка вывода JSON: %v", err)
	}
}
