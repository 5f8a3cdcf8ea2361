package sheet

import (
	"errors"
	"fmt"
)

var (
	ErrNoSheets = errors.New("в книге нет листов")
	ErrNoHeader = errors.New("строка заголовков не найдена")
)

// IOError ошибка работы с файлом; Op: открытия, чтения, записи
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("ошибка %s файла %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
