package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicate распознает нарушение уникального индекса. TranslateError
// покрывает Postgres; строковые проверки ловят драйверы без транслятора.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
