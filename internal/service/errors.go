package service

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidInput некорректный запрос без привязки к конкретным полям
var ErrInvalidInput = errors.New("invalid input")

// ValidationError собирает все ошибки полей одной проверки, а не только
// первую: клиент показывает их рядом с каждым полем формы.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}

func newValidationError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
