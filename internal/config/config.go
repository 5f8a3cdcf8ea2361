package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/ryabkov82/roster-merger/internal/join"
)

const (
	SortNone   = "none"
	SortSalary = "salary"
	SortValue  = "value"
)

type Config struct {
	StatsPath  string
	SalaryPath string
	OutputPath string
	Team       string // значение колонки команды для фильтра состава, пусто без фильтра

	StatsKey         string // колонка с именем игрока в статистике
	SalaryKey        string // колонка с именем игрока в зарплатах
	StatsTeamColumn  string
	SalaryTeamColumn string
	SalaryColumn     string // колонка с суммой зарплаты
	StatsHeaderRow   int
	SalaryHeaderRow  int // в исходной книге зарплат первая строка занята заголовком таблицы

	StripSuffixes bool
	Conflict      join.Conflict
	SortBy        string
	Valuation     bool

	RosterPath string
	Roster     *Roster

	LogLevel string
	LogFile  string
}

// ParseFlags разбирает аргументы командной строки. Значения по умолчанию
// берутся из окружения (и файла .env) с префиксом ROSTER_.
func ParseFlags(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var (
		conflict    string
		noValuation bool
	)

	fs := flag.NewFlagSet("roster-merger", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StatsPath, "stats", getEnv("ROSTER_STATS", ""), "XLSX файл со статистикой игроков")
	fs.StringVar(&cfg.SalaryPath, "salary", getEnv("ROSTER_SALARY", ""), "XLSX файл с зарплатами игроков")
	fs.StringVar(&cfg.OutputPath, "out", getEnv("ROSTER_OUT", "./roster.xlsx"), "результирующий файл")
	fs.StringVar(&cfg.Team, "team", getEnv("ROSTER_TEAM", ""), "команда для фильтра состава, например MIA")

	fs.StringVar(&cfg.StatsKey, "stats-key", getEnv("ROSTER_STATS_KEY", "Player"), "колонка с именем в статистике")
	fs.StringVar(&cfg.SalaryKey, "salary-key", getEnv("ROSTER_SALARY_KEY", "Player"), "колонка с именем в зарплатах")
	fs.StringVar(&cfg.StatsTeamColumn, "stats-team-col", getEnv("ROSTER_STATS_TEAM_COL", "Team"), "колонка команды в статистике")
	fs.StringVar(&cfg.SalaryTeamColumn, "salary-team-col", getEnv("ROSTER_SALARY_TEAM_COL", "Tm"), "колонка команды в зарплатах")
	fs.StringVar(&cfg.SalaryColumn, "salary-col", getEnv("ROSTER_SALARY_COL", "2024-25"), "колонка с суммой зарплаты")
	fs.IntVar(&cfg.StatsHeaderRow, "stats-header-row", getEnvInt("ROSTER_STATS_HEADER_ROW", 1), "номер строки заголовков в статистике")
	fs.IntVar(&cfg.SalaryHeaderRow, "salary-header-row", getEnvInt("ROSTER_SALARY_HEADER_ROW", 2), "номер строки заголовков в зарплатах")

	fs.BoolVar(&cfg.StripSuffixes, "strip-suffixes", getEnvBool("ROSTER_STRIP_SUFFIXES", false), "отбрасывать суффиксы Jr., Sr., II при сопоставлении")
	fs.StringVar(&conflict, "conflict", getEnv("ROSTER_CONFLICT", string(join.ConflictLastWins)), "повторы в зарплатах: last-wins, first-wins, sum, reject")
	fs.StringVar(&cfg.SortBy, "sort", getEnv("ROSTER_SORT", SortNone), "сортировка результата: none, salary, value")
	fs.BoolVar(&noValuation, "no-valuation", getEnvBool("ROSTER_NO_VALUATION", false), "не добавлять колонки оценки игроков")
	fs.StringVar(&cfg.RosterPath, "roster", getEnv("ROSTER_FILE", ""), "YAML файл со списками include/exclude и суффиксами")

	fs.StringVar(&cfg.LogLevel, "log-level", getEnv("ROSTER_LOG_LEVEL", "info"), "уровень логирования")
	fs.StringVar(&cfg.LogFile, "log-file", getEnv("ROSTER_LOG_FILE", ""), "файл лога, по умолчанию stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Valuation = !noValuation

	var err error
	if cfg.Conflict, err = join.ParseConflict(conflict); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Нормализация путей
	cfg.StatsPath = filepath.Clean(cfg.StatsPath)
	cfg.SalaryPath = filepath.Clean(cfg.SalaryPath)
	cfg.OutputPath = filepath.Clean(cfg.OutputPath)

	if cfg.RosterPath != "" {
		cfg.RosterPath = filepath.Clean(cfg.RosterPath)
		if cfg.Roster, err = LoadRoster(cfg.RosterPath); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StatsPath == "" {
		return fmt.Errorf("необходимо указать файл статистики через -stats")
	}
	if c.SalaryPath == "" {
		return fmt.Errorf("необходимо указать файл зарплат через -salary")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("необходимо указать результирующий файл через -out")
	}
	if c.StatsKey == "" || c.SalaryKey == "" {
		return fmt.Errorf("колонки с именем игрока не могут быть пустыми")
	}
	if c.StatsHeaderRow < 1 || c.SalaryHeaderRow < 1 {
		return fmt.Errorf("номер строки заголовков должен быть не меньше 1")
	}
	switch c.SortBy {
	case SortNone, SortSalary, SortValue:
	default:
		return fmt.Errorf("неизвестная сортировка %q", c.SortBy)
	}
	return nil
}

// Normalizer нормализатор имён с учётом настроек и суффиксов из файла состава
func (c *Config) Normalizer() join.Normalizer {
	n := join.Normalizer{StripSuffixes: c.StripSuffixes}
	if c.Roster != nil && len(c.Roster.Suffixes) > 0 {
		n.Suffixes = c.Roster.Suffixes
		n.StripSuffixes = true
	}
	return n
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
