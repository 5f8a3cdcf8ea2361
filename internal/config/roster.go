package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ryabkov82/roster-merger/internal/join"
	"gopkg.in/yaml.v3"
)

// Roster списки игроков для включения и исключения и суффиксы имён
type Roster struct {
	Suffixes []string `yaml:"suffixes"`
	Include  []string `yaml:"include"`
	Exclude  []string `yaml:"exclude"`
}

func LoadRoster(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла состава %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	r := &Roster{}
	if err := dec.Decode(r); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("ошибка разбора файла состава %s: %w", path, err)
	}
	return r, nil
}

// KeyFilter фильтр ключей; nil, если списки пусты
func (r *Roster) KeyFilter(n join.Normalizer) *join.KeyFilter {
	if r == nil || (len(r.Include) == 0 && len(r.Exclude) == 0) {
		return nil
	}
	return join.NewKeyFilter(n, r.Include, r.Exclude)
}
