package join

import "fmt"

// SchemaError обязательная колонка отсутствует в таблице
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("в таблице %q нет колонки %q", e.Table, e.Column)
}

// DuplicateKeyError повтор ключа при политике ConflictReject
type DuplicateKeyError struct {
	Table string
	Key   Key
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("в таблице %q повторяется ключ %q", e.Table, string(e.Key))
}
